package room

import (
	"time"

	"github.com/listup/listup-server/internal/game"
	"github.com/listup/listup-server/pkg/types"
	"go.uber.org/zap"
)

type timerKind int

const (
	timerDebateWarn timerKind = iota
	timerDebateEnd
	timerCountdownEnd
)

const (
	debateWarning = 10 * time.Second
	timeExtension = 30 * time.Second
)

// invalidateTimers advances the generation counter so every callback scheduled
// before this point becomes a no-op when it fires.
func (r *Room) invalidateTimers() { r.gen++ }

func (r *Room) onTimerFired(m timerFired) {
	if m.gen != r.gen {
		return
	}

	switch m.kind {
	case timerDebateWarn:
		if r.state.Status == game.StatusDebating {
			r.broadcast(types.NewDebateEnding(int(debateWarning / time.Second)))
		}

	case timerDebateEnd:
		if r.state.Status == game.StatusDebating {
			r.transitionToPlaying()
		}

	case timerCountdownEnd:
		if r.state.Status == game.StatusPlaying && r.state.Settings.FinishMode == game.FinishTimed {
			r.endGame()
		}
	}
}

// armDebateTimers schedules the 10-second warning and the debate -> playing
// transition against the current DebateEndsAt deadline.
func (r *Room) armDebateTimers() {
	if r.state.DebateEndsAt == nil {
		return
	}

	r.invalidateTimers()
	gen := r.gen

	left := time.Duration(*r.state.DebateEndsAt-r.now().UnixMilli()) * time.Millisecond
	if left <= 0 {
		r.transitionToPlaying()
		return
	}

	if left > debateWarning {
		r.schedule(left-debateWarning, func() {
			r.post(timerFired{gen: gen, kind: timerDebateWarn})
		})
	}
	r.schedule(left, func() {
		r.post(timerFired{gen: gen, kind: timerDebateEnd})
	})
}

// armCountdown schedules round end against the current TimerEndsAt deadline.
// Re-arming after an extension invalidates the previously scheduled callback.
func (r *Room) armCountdown() {
	if r.state.TimerEndsAt == nil {
		return
	}

	r.invalidateTimers()
	gen := r.gen

	left := time.Duration(*r.state.TimerEndsAt-r.now().UnixMilli()) * time.Millisecond
	if left <= 0 {
		r.endGame()
		return
	}

	r.schedule(left, func() {
		r.post(timerFired{gen: gen, kind: timerCountdownEnd})
	})
}

func (r *Room) transitionToPlaying() {
	r.invalidateTimers()
	r.state.Status = game.StatusPlaying
	r.state.DebateEndsAt = nil

	if r.state.Settings.FinishMode == game.FinishTimed {
		endsAt := r.now().UnixMilli() + int64(r.state.Settings.TimerDuration)*1000
		r.state.TimerEndsAt = &endsAt
		r.armCountdown()
	}

	r.syncAll()
}

// checkGameEnd runs after every action that could satisfy completion.
func (r *Room) checkGameEnd() {
	if r.state.Status != game.StatusPlaying {
		return
	}

	active := r.state.ActivePlayers()
	if len(active) == 0 {
		return
	}

	if r.state.Settings.FinishMode == game.FinishConsensus {
		allSatisfied := true
		for _, p := range active {
			if !p.Satisfied {
				allSatisfied = false
				break
			}
		}
		if allSatisfied {
			r.endGame()
			return
		}
	}

	if r.state.Settings.GameMode == game.ModeBlind {
		allSubmitted := true
		for _, p := range active {
			if !p.SubmittedBlind {
				allSubmitted = false
				break
			}
		}
		if allSubmitted {
			r.endGame()
		}
	}
}

func (r *Room) endGame() {
	r.invalidateTimers()
	r.state.Status = game.StatusFinished
	r.state.TimerEndsAt = nil

	if r.state.Settings.GameMode == game.ModeBlind {
		r.state.FinalList = game.BordaRanking(r.state.Items, r.state.ActivePlayers())
		r.broadcast(types.NewBlindReveal(r.state.FinalList))
	} else {
		r.state.FinalList = game.CopyItems(r.state.Items)
	}

	r.log.Info("round finished", zap.Int("items", len(r.state.FinalList)))
	r.syncAll()
}
