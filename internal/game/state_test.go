package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	assert.Equal(t, StatusLobby, s.Status)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Players)
	assert.Nil(t, s.TimerEndsAt)
	assert.Nil(t, s.DebateEndsAt)
	assert.Nil(t, s.FinalList)
	assert.Equal(t, Settings{
		FinishMode:     FinishConsensus,
		TimerDuration:  60,
		GameMode:       ModeClassic,
		DebateDuration: 60,
	}, s.Settings)
}

func TestSettingsApplyMergesOnlyProvidedFields(t *testing.T) {
	s := NewState().Settings

	timed := FinishTimed
	dur := 90
	s.Apply(SettingsPatch{FinishMode: &timed, TimerDuration: &dur})

	assert.Equal(t, FinishTimed, s.FinishMode)
	assert.Equal(t, 90, s.TimerDuration)
	// untouched fields keep defaults
	assert.Equal(t, ModeClassic, s.GameMode)
	assert.Equal(t, 60, s.DebateDuration)
}

func TestPlayerOrderAndRemoval(t *testing.T) {
	s := NewState()
	s.AddPlayer(&Player{ID: "p1", IsHost: true})
	s.AddPlayer(&Player{ID: "p2"})
	s.AddPlayer(&Player{ID: "p3"})

	assert.Equal(t, 1, s.JoinIndex("p2"))

	wasHost, ok := s.RemovePlayer("p1")
	require.True(t, ok)
	assert.True(t, wasHost)
	assert.Equal(t, []string{"p2", "p3"}, s.Order)
	// join indexes shift with removal, matching color reassignment behavior
	assert.Equal(t, 0, s.JoinIndex("p2"))

	_, ok = s.RemovePlayer("nope")
	assert.False(t, ok)
}

func TestNextHostSuccession(t *testing.T) {
	cases := []struct {
		name           string
		players        []*Player
		allowSpectator bool
		want           string
	}{
		{
			name:    "first non-spectator",
			players: []*Player{{ID: "spec", IsSpectator: true}, {ID: "p2"}},
			want:    "p2",
		},
		{
			name:           "spectator allowed picks first remaining",
			players:        []*Player{{ID: "spec", IsSpectator: true}, {ID: "p2"}},
			allowSpectator: true,
			want:           "spec",
		},
		{
			name:    "only spectators and not allowed",
			players: []*Player{{ID: "spec", IsSpectator: true}},
			want:    "",
		},
		{
			name:           "only spectators and allowed",
			players:        []*Player{{ID: "spec", IsSpectator: true}},
			allowSpectator: true,
			want:           "spec",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState()
			for _, p := range tc.players {
				s.AddPlayer(p)
			}
			got := s.NextHost(tc.allowSpectator)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.ID)
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewState()
	p := &Player{ID: "p1", BlindItems: []Item{{ID: "1", Text: "a"}}}
	s.AddPlayer(p)
	s.Items = []Item{{ID: "1", Text: "a"}}
	ends := int64(42)
	s.TimerEndsAt = &ends

	c := s.Clone()

	p.Name = "renamed"
	p.BlindItems[0].Text = "b"
	s.Items[0].Text = "b"
	s.Order[0] = "other"
	*s.TimerEndsAt = 99

	assert.Empty(t, c.Players["p1"].Name)
	assert.Equal(t, "a", c.Players["p1"].BlindItems[0].Text)
	assert.Equal(t, "a", c.Items[0].Text)
	assert.Equal(t, "p1", c.Order[0])
	assert.Equal(t, int64(42), *c.TimerEndsAt)
}

func TestColorForWrapsPalette(t *testing.T) {
	assert.Equal(t, PlayerColors[0], ColorFor(0))
	assert.Equal(t, PlayerColors[7], ColorFor(7))
	assert.Equal(t, PlayerColors[0], ColorFor(8))
	assert.Equal(t, PlayerColors[0], ColorFor(-1))
}
