package game

type Status string

const (
	StatusLobby    Status = "lobby"
	StatusDebating Status = "debating"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type FinishMode string

const (
	FinishConsensus FinishMode = "consensus"
	FinishTimed     FinishMode = "timed"
)

type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeDebate  GameMode = "debate"
	ModeBlind   GameMode = "blind"
)

const DefaultAvatar = "😀"

// Item identity is ID; Text only changes by wholesale replacement of the list.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Settings struct {
	FinishMode     FinishMode `json:"finishMode"`
	TimerDuration  int        `json:"timerDuration"` // seconds
	GameMode       GameMode   `json:"gameMode"`
	DebateDuration int        `json:"debateDuration"` // seconds
}

// SettingsPatch is a partial Settings; nil fields are left untouched on merge.
type SettingsPatch struct {
	FinishMode     *FinishMode `json:"finishMode,omitempty"`
	TimerDuration  *int        `json:"timerDuration,omitempty"`
	GameMode       *GameMode   `json:"gameMode,omitempty"`
	DebateDuration *int        `json:"debateDuration,omitempty"`
}

func (s *Settings) Apply(p SettingsPatch) {
	if p.FinishMode != nil {
		s.FinishMode = *p.FinishMode
	}
	if p.TimerDuration != nil {
		s.TimerDuration = *p.TimerDuration
	}
	if p.GameMode != nil {
		s.GameMode = *p.GameMode
	}
	if p.DebateDuration != nil {
		s.DebateDuration = *p.DebateDuration
	}
}

type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Satisfied     bool   `json:"satisfied"`
	IsHost        bool   `json:"isHost"`
	Avatar        string `json:"avatar,omitempty"`
	VotedMoreTime bool   `json:"votedMoreTime"`
	IsSpectator   bool   `json:"isSpectator"`
	BlindItems    []Item `json:"blindItems,omitempty"`

	// SubmittedBlind tracks blind-mode submission separately from Satisfied.
	// Blind submit sets both; only Satisfied is on the wire.
	SubmittedBlind bool `json:"-"`
}

// State is the per-room canonical game state, owned exclusively by one room
// actor. Order mirrors the players map in join order, which Go maps do not
// preserve; it drives color assignment and host succession.
type State struct {
	Status       Status             `json:"status"`
	Items        []Item             `json:"items"`
	Players      map[string]*Player `json:"players"`
	Settings     Settings           `json:"settings"`
	TimerEndsAt  *int64             `json:"timerEndsAt"`  // unix ms
	DebateEndsAt *int64             `json:"debateEndsAt"` // unix ms
	FinalList    []Item             `json:"finalList"`

	Order []string `json:"-"`
}

func NewState() *State {
	return &State{
		Status:  StatusLobby,
		Items:   []Item{},
		Players: make(map[string]*Player),
		Settings: Settings{
			FinishMode:     FinishConsensus,
			TimerDuration:  60,
			GameMode:       ModeClassic,
			DebateDuration: 60,
		},
	}
}

func (s *State) AddPlayer(p *Player) {
	s.Players[p.ID] = p
	s.Order = append(s.Order, p.ID)
}

// RemovePlayer deletes the player and reports whether it held the host role.
func (s *State) RemovePlayer(id string) (wasHost bool, ok bool) {
	p, ok := s.Players[id]
	if !ok {
		return false, false
	}
	delete(s.Players, id)
	for i, pid := range s.Order {
		if pid == id {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
	return p.IsHost, true
}

// JoinIndex returns the player's position in join order, or -1.
func (s *State) JoinIndex(id string) int {
	for i, pid := range s.Order {
		if pid == id {
			return i
		}
	}
	return -1
}

// Clone deep-copies the state so a holder outside the owning goroutine can
// read it after later mutations.
func (s *State) Clone() State {
	out := *s
	out.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		cp := *p
		cp.BlindItems = CopyItems(p.BlindItems)
		out.Players[id] = &cp
	}
	out.Order = append([]string(nil), s.Order...)
	out.Items = CopyItems(s.Items)
	out.FinalList = CopyItems(s.FinalList)
	if s.TimerEndsAt != nil {
		v := *s.TimerEndsAt
		out.TimerEndsAt = &v
	}
	if s.DebateEndsAt != nil {
		v := *s.DebateEndsAt
		out.DebateEndsAt = &v
	}
	return out
}

// PlayersInOrder returns players sorted by join order.
func (s *State) PlayersInOrder() []*Player {
	out := make([]*Player, 0, len(s.Order))
	for _, id := range s.Order {
		if p, ok := s.Players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ActivePlayers returns all non-spectators in join order.
func (s *State) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Order))
	for _, p := range s.PlayersInOrder() {
		if !p.IsSpectator {
			out = append(out, p)
		}
	}
	return out
}

// NextHost picks the succession candidate after the host left: the first
// remaining non-spectator by join order, or, when allowSpectator is set, the
// first remaining player unconditionally.
func (s *State) NextHost(allowSpectator bool) *Player {
	for _, p := range s.PlayersInOrder() {
		if allowSpectator || !p.IsSpectator {
			return p
		}
	}
	return nil
}

// PlayerColors is the cursor palette; a player's color is fixed by join order.
var PlayerColors = [...]string{
	"#3B82F6", // blue
	"#EF4444", // red
	"#10B981", // green
	"#F59E0B", // amber
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#F97316", // orange
}

func ColorFor(joinIndex int) string {
	if joinIndex < 0 {
		joinIndex = 0
	}
	return PlayerColors[joinIndex%len(PlayerColors)]
}

func CopyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
