package types

import "github.com/listup/listup-server/internal/game"

// Inbound client -> server messages, discriminated by Type. Fields are a
// superset across all message kinds; each handler reads only the ones its
// kind defines.
//
// join:                 name, avatar?, asSpectator?
// update-settings:      settings (partial)
// set-items:            items
// start-game:           -
// reorder:              items
// toggle-satisfied:     -
// request-more-time:    -
// new-round:            -
// cursor-move:          position, draggingItem
// set-avatar:           avatar
// send-reaction:        reaction
// skip-debate:          -
// submit-blind-ranking: items
type ClientMessage struct {
	Type         string              `json:"type"`
	Name         string              `json:"name,omitempty"`
	Avatar       string              `json:"avatar,omitempty"`
	AsSpectator  bool                `json:"asSpectator,omitempty"`
	Settings     *game.SettingsPatch `json:"settings,omitempty"`
	Items        []game.Item         `json:"items,omitempty"`
	Position     *CursorPosition     `json:"position,omitempty"`
	DraggingItem *string             `json:"draggingItem,omitempty"`
	Reaction     string              `json:"reaction,omitempty"`
}

type CursorPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PlayerCursor struct {
	PlayerID     string         `json:"playerId"`
	PlayerName   string         `json:"playerName"`
	PlayerColor  string         `json:"playerColor"`
	Position     CursorPosition `json:"position"`
	DraggingItem *string        `json:"draggingItem"`
}

type Reaction struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Type       string `json:"type"`
	Timestamp  int64  `json:"timestamp"`
}

// Outbound server -> client messages. One struct per kind, each carrying its
// own Type tag so clients can switch on it.

type Sync struct {
	Type  string      `json:"type"`
	State *game.State `json:"state"`
}

type PlayerJoined struct {
	Type   string       `json:"type"`
	Player *game.Player `json:"player"`
}

type PlayerLeft struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type CursorUpdate struct {
	Type   string       `json:"type"`
	Cursor PlayerCursor `json:"cursor"`
}

type ReactionMessage struct {
	Type     string   `json:"type"`
	Reaction Reaction `json:"reaction"`
}

type TimeExtended struct {
	Type      string `json:"type"`
	NewEndsAt int64  `json:"newEndsAt"`
	VotedBy   string `json:"votedBy"`
}

type DebateEnding struct {
	Type        string `json:"type"`
	SecondsLeft int    `json:"secondsLeft"`
}

type BlindReveal struct {
	Type      string      `json:"type"`
	FinalList []game.Item `json:"finalList"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewSync(s *game.State) Sync { return Sync{Type: "sync", State: s} }

func NewPlayerJoined(p *game.Player) PlayerJoined {
	return PlayerJoined{Type: "player-joined", Player: p}
}

func NewPlayerLeft(id string) PlayerLeft { return PlayerLeft{Type: "player-left", PlayerID: id} }

func NewCursorUpdate(c PlayerCursor) CursorUpdate {
	return CursorUpdate{Type: "cursor-update", Cursor: c}
}

func NewReaction(r Reaction) ReactionMessage { return ReactionMessage{Type: "reaction", Reaction: r} }

func NewTimeExtended(endsAt int64, votedBy string) TimeExtended {
	return TimeExtended{Type: "time-extended", NewEndsAt: endsAt, VotedBy: votedBy}
}

func NewDebateEnding(secondsLeft int) DebateEnding {
	return DebateEnding{Type: "debate-ending", SecondsLeft: secondsLeft}
}

func NewBlindReveal(items []game.Item) BlindReveal {
	return BlindReveal{Type: "blind-reveal", FinalList: items}
}

func NewError(msg string) ErrorMessage { return ErrorMessage{Type: "error", Message: msg} }
