package room

import (
	"github.com/listup/listup-server/internal/game"
	"github.com/listup/listup-server/pkg/types"
	"go.uber.org/zap"
)

// dispatch routes one inbound client message. Administrative actions answer
// invalid use with an error unicast; high-frequency gameplay actions in the
// wrong phase are dropped silently.
func (r *Room) dispatch(clientID string, msg types.ClientMessage) {
	switch msg.Type {
	case "join":
		r.handleJoin(clientID, msg)
	case "update-settings":
		r.handleUpdateSettings(clientID, msg)
	case "set-items":
		r.handleSetItems(clientID, msg)
	case "start-game":
		r.handleStartGame(clientID)
	case "reorder":
		r.handleReorder(clientID, msg)
	case "toggle-satisfied":
		r.handleToggleSatisfied(clientID)
	case "request-more-time":
		r.handleRequestMoreTime(clientID)
	case "new-round":
		r.handleNewRound(clientID)
	case "cursor-move":
		r.handleCursorMove(clientID, msg)
	case "set-avatar":
		r.handleSetAvatar(clientID, msg)
	case "send-reaction":
		r.handleSendReaction(clientID, msg)
	case "skip-debate":
		r.handleSkipDebate(clientID)
	case "submit-blind-ranking":
		r.handleSubmitBlindRanking(clientID, msg)
	default:
		r.log.Debug("unknown message type",
			zap.String("client", clientID),
			zap.String("type", msg.Type),
		)
		r.errorTo(clientID, "Unknown message type")
	}
}

// sender returns the joined player for a connection, or nil.
func (r *Room) sender(clientID string) *game.Player {
	return r.state.Players[clientID]
}

func (r *Room) requireHost(clientID, message string) *game.Player {
	p := r.sender(clientID)
	if p == nil || !p.IsHost {
		r.errorTo(clientID, message)
		return nil
	}
	return p
}

func (r *Room) handleJoin(clientID string, msg types.ClientMessage) {
	avatar := msg.Avatar
	if avatar == "" {
		avatar = game.DefaultAvatar
	}

	p := &game.Player{
		ID:          clientID,
		Name:        msg.Name,
		IsHost:      len(r.state.Players) == 0 && !msg.AsSpectator, // spectators can't be host
		Avatar:      avatar,
		IsSpectator: msg.AsSpectator,
	}

	r.state.AddPlayer(p)
	r.log.Info("player joined",
		zap.String("client", clientID),
		zap.String("name", p.Name),
		zap.Bool("spectator", p.IsSpectator),
	)
	r.broadcast(types.NewPlayerJoined(p))
	r.syncAll()
}

func (r *Room) handleUpdateSettings(clientID string, msg types.ClientMessage) {
	if r.requireHost(clientID, "Only host can update settings") == nil {
		return
	}
	if r.state.Status != game.StatusLobby {
		r.errorTo(clientID, "Cannot update settings during game")
		return
	}
	if msg.Settings != nil {
		r.state.Settings.Apply(*msg.Settings)
	}
	r.syncAll()
}

func (r *Room) handleSetItems(clientID string, msg types.ClientMessage) {
	if r.requireHost(clientID, "Only host can set items") == nil {
		return
	}
	if r.state.Status != game.StatusLobby {
		r.errorTo(clientID, "Cannot set items during game")
		return
	}
	r.state.Items = msg.Items
	r.syncAll()
}

func (r *Room) handleStartGame(clientID string) {
	if r.requireHost(clientID, "Only host can start game") == nil {
		return
	}
	if len(r.state.Items) < 2 {
		r.errorTo(clientID, "Need at least 2 items to start")
		return
	}

	r.state.FinalList = nil

	for _, p := range r.state.Players {
		p.Satisfied = false
		p.VotedMoreTime = false
		p.SubmittedBlind = false
		if r.state.Settings.GameMode == game.ModeBlind {
			p.BlindItems = game.CopyItems(r.state.Items)
		}
	}

	if r.state.Settings.GameMode == game.ModeDebate {
		r.state.Status = game.StatusDebating
		endsAt := r.now().UnixMilli() + int64(r.state.Settings.DebateDuration)*1000
		r.state.DebateEndsAt = &endsAt
		r.armDebateTimers()
	} else {
		r.state.Status = game.StatusPlaying
		if r.state.Settings.FinishMode == game.FinishTimed {
			endsAt := r.now().UnixMilli() + int64(r.state.Settings.TimerDuration)*1000
			r.state.TimerEndsAt = &endsAt
			r.armCountdown()
		}
	}

	r.log.Info("round started",
		zap.String("gameMode", string(r.state.Settings.GameMode)),
		zap.String("finishMode", string(r.state.Settings.FinishMode)),
	)
	r.syncAll()
}

func (r *Room) handleReorder(clientID string, msg types.ClientMessage) {
	if r.state.Status != game.StatusPlaying {
		return
	}
	p := r.sender(clientID)
	if p == nil || p.IsSpectator {
		return
	}

	// blind mode: each player keeps a private order, visible only to them
	if r.state.Settings.GameMode == game.ModeBlind {
		p.BlindItems = msg.Items
		r.syncTo(clientID)
		return
	}

	r.state.Items = msg.Items

	// any reorder invalidates prior consensus
	if r.state.Settings.FinishMode == game.FinishConsensus {
		for _, other := range r.state.Players {
			other.Satisfied = false
		}
	}

	r.syncAll()
}

func (r *Room) handleToggleSatisfied(clientID string) {
	if r.state.Status != game.StatusPlaying {
		return
	}
	if r.state.Settings.FinishMode != game.FinishConsensus {
		return
	}
	p := r.sender(clientID)
	if p == nil || p.IsSpectator {
		return
	}

	p.Satisfied = !p.Satisfied
	r.syncAll()
	r.checkGameEnd()
}

func (r *Room) handleRequestMoreTime(clientID string) {
	if r.state.Status != game.StatusPlaying {
		return
	}
	if r.state.Settings.FinishMode != game.FinishTimed || r.state.TimerEndsAt == nil {
		return
	}
	p := r.sender(clientID)
	if p == nil {
		return
	}
	if p.VotedMoreTime {
		r.errorTo(clientID, "You already voted for more time")
		return
	}

	p.VotedMoreTime = true
	*r.state.TimerEndsAt += timeExtension.Milliseconds()

	r.broadcast(types.NewTimeExtended(*r.state.TimerEndsAt, p.Name))
	r.syncAll()
	r.armCountdown()
}

func (r *Room) handleNewRound(clientID string) {
	if r.requireHost(clientID, "Only host can start new round") == nil {
		return
	}

	r.invalidateTimers()
	r.state.Status = game.StatusLobby
	r.state.TimerEndsAt = nil
	r.state.DebateEndsAt = nil
	r.state.FinalList = nil

	for _, p := range r.state.Players {
		p.Satisfied = false
		p.VotedMoreTime = false
		p.SubmittedBlind = false
		p.BlindItems = nil
	}

	r.syncAll()
}

func (r *Room) handleCursorMove(clientID string, msg types.ClientMessage) {
	if r.state.Status != game.StatusPlaying {
		return
	}
	p := r.sender(clientID)
	if p == nil {
		return
	}

	var pos types.CursorPosition
	if msg.Position != nil {
		pos = *msg.Position
	}

	cursor := types.PlayerCursor{
		PlayerID:     clientID,
		PlayerName:   p.Name,
		PlayerColor:  game.ColorFor(r.state.JoinIndex(clientID)),
		Position:     pos,
		DraggingItem: msg.DraggingItem,
	}

	// never echoed back to the sender
	r.broadcastExcept(clientID, types.NewCursorUpdate(cursor))
}

func (r *Room) handleSetAvatar(clientID string, msg types.ClientMessage) {
	p := r.sender(clientID)
	if p == nil {
		return
	}
	p.Avatar = msg.Avatar
	r.syncAll()
}

func (r *Room) handleSendReaction(clientID string, msg types.ClientMessage) {
	p := r.sender(clientID)
	if p == nil {
		return
	}

	r.broadcast(types.NewReaction(types.Reaction{
		PlayerID:   clientID,
		PlayerName: p.Name,
		Type:       msg.Reaction,
		Timestamp:  r.now().UnixMilli(),
	}))
}

func (r *Room) handleSkipDebate(clientID string) {
	if r.requireHost(clientID, "Only host can skip debate") == nil {
		return
	}
	if r.state.Status != game.StatusDebating {
		return
	}
	r.transitionToPlaying()
}

func (r *Room) handleSubmitBlindRanking(clientID string, msg types.ClientMessage) {
	if r.state.Status != game.StatusPlaying {
		return
	}
	if r.state.Settings.GameMode != game.ModeBlind {
		return
	}
	p := r.sender(clientID)
	if p == nil || p.IsSpectator {
		return
	}

	p.BlindItems = msg.Items
	p.SubmittedBlind = true
	p.Satisfied = true // submission doubles as the completion signal on the wire
	r.syncAll()
	r.checkGameEnd()
}
