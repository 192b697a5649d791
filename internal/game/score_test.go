package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestBordaRanking(t *testing.T) {
	a := Item{ID: "a", Text: "A"}
	b := Item{ID: "b", Text: "B"}
	c := Item{ID: "c", Text: "C"}
	shared := []Item{a, b, c}

	cases := []struct {
		name    string
		players []*Player
		want    []string
	}{
		{
			// A: 2+0=2, B: 1+2=3, C: 0+1=1
			name: "two ballots",
			players: []*Player{
				{ID: "p1", BlindItems: []Item{a, b, c}},
				{ID: "p2", BlindItems: []Item{b, c, a}},
			},
			want: []string{"b", "a", "c"},
		},
		{
			name: "missing ballot falls back to shared order",
			players: []*Player{
				{ID: "p1", BlindItems: []Item{c, b, a}},
				{ID: "p2"},
			},
			// A: 0+2=2, B: 1+1=2, C: 2+0=2 -> all tied, shared order wins
			want: []string{"a", "b", "c"},
		},
		{
			name:    "no ballots keeps shared order",
			players: nil,
			want:    []string{"a", "b", "c"},
		},
		{
			name: "unanimous reversal",
			players: []*Player{
				{ID: "p1", BlindItems: []Item{c, b, a}},
				{ID: "p2", BlindItems: []Item{c, b, a}},
			},
			want: []string{"c", "b", "a"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BordaRanking(shared, tc.players)
			assert.Equal(t, tc.want, ids(got))
			// input order must survive scoring untouched
			assert.Equal(t, []string{"a", "b", "c"}, ids(shared))
		})
	}
}

func TestBordaRankingIgnoresUnknownBallotItems(t *testing.T) {
	a := Item{ID: "a", Text: "A"}
	b := Item{ID: "b", Text: "B"}
	shared := []Item{a, b}

	players := []*Player{
		{ID: "p1", BlindItems: []Item{{ID: "ghost"}, b, a}},
	}

	got := BordaRanking(shared, players)
	// b ranked above a on the only ballot
	assert.Equal(t, []string{"b", "a"}, ids(got))
}
