package room

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/game"
	"github.com/listup/listup-server/pkg/types"
)

type Msg interface{ isRoomMsg() }

// Connect registers a transport connection. No player record exists until the
// connection sends a join message; the new connection only receives a sync.
type Connect struct {
	ClientID string
	Outbox   chan []byte // where this client wants to receive frames
}

func (Connect) isRoomMsg() {}

type Disconnect struct{ ClientID string }

func (Disconnect) isRoomMsg() {}

type FromClient struct {
	ClientID string
	Msg      types.ClientMessage
}

func (FromClient) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isRoomMsg() {}

// timerFired re-enters the actor loop when a scheduled deadline elapses.
// Stale generations are ignored.
type timerFired struct {
	gen  uint64
	kind timerKind
}

func (timerFired) isRoomMsg() {}

// View is a deep snapshot of room state, safe to hold and read after the
// reply (test and reaper use).
type View struct {
	NumClients int
	LastActive time.Time
	State      game.State
}

type Options struct {
	// AllowSpectatorHost reproduces the legacy succession rule where the
	// first remaining player inherits the host role even if spectating.
	// Default is to pass over spectators.
	AllowSpectatorHost bool
}

type Room struct {
	code    string
	inbox   chan Msg
	state   *game.State
	clients map[string]chan []byte
	opts    Options

	gen        uint64
	now        func() time.Time
	schedule   func(d time.Duration, f func())
	lastActive time.Time

	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// Option overrides clock or scheduling, used by tests to drive timers
// deterministically.
type Option func(*Room)

func WithClock(now func() time.Time) Option {
	return func(r *Room) { r.now = now }
}

func WithScheduler(schedule func(d time.Duration, f func())) Option {
	return func(r *Room) { r.schedule = schedule }
}

func NewRoom(parent context.Context, code string, log *zap.Logger, opts Options, options ...Option) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:    code,
		inbox:   make(chan Msg, 64),
		state:   game.NewState(),
		clients: make(map[string]chan []byte),
		opts:    opts,
		now:     time.Now,
		log:     log.With(zap.String("room", code)),
		ctx:     ctx,
		cancel:  cancel,
	}
	r.schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	for _, o := range options {
		o(r)
	}
	r.lastActive = r.now()

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			if _, ok := m.(Shutdown); ok {
				r.shutdown()
				return
			}
			r.handle(m)
		}
	}
}

// handle processes one message. A panic in a handler is contained here so a
// bad message cannot take down other rooms.
func (r *Room) handle(m Msg) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("room handler panic", zap.Any("panic", rec))
		}
	}()

	switch msg := m.(type) {
	case Connect:
		r.lastActive = r.now()
		r.clients[msg.ClientID] = msg.Outbox
		r.syncTo(msg.ClientID)

	case Disconnect:
		r.lastActive = r.now()
		r.handleDisconnect(msg.ClientID)

	case FromClient:
		r.lastActive = r.now()
		r.dispatch(msg.ClientID, msg.Msg)

	case timerFired:
		r.onTimerFired(msg)

	case GetView:
		msg.Reply <- View{
			NumClients: len(r.clients),
			LastActive: r.lastActive,
			State:      r.state.Clone(),
		}
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) handleDisconnect(id string) {
	if ch, ok := r.clients[id]; ok {
		close(ch)
		delete(r.clients, id)
	}

	wasHost, ok := r.state.RemovePlayer(id)
	if !ok {
		return
	}

	if wasHost {
		if next := r.state.NextHost(r.opts.AllowSpectatorHost); next != nil {
			next.IsHost = true
		}
	}

	r.broadcast(types.NewPlayerLeft(id))
	r.syncAll()
	// a non-satisfied player leaving can complete the round
	r.checkGameEnd()
}

// post re-enters the inbox from a timer callback. Dropped on shutdown.
func (r *Room) post(m Msg) {
	select {
	case r.inbox <- m:
	case <-r.ctx.Done():
	}
}

func (r *Room) broadcast(v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		r.log.Error("marshal broadcast", zap.Error(err))
		return
	}
	for id, ch := range r.clients {
		r.send(id, ch, frame)
	}
}

func (r *Room) broadcastExcept(exclude string, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		r.log.Error("marshal broadcast", zap.Error(err))
		return
	}
	for id, ch := range r.clients {
		if id == exclude {
			continue
		}
		r.send(id, ch, frame)
	}
}

func (r *Room) unicast(id string, v any) {
	ch, ok := r.clients[id]
	if !ok {
		return
	}
	frame, err := json.Marshal(v)
	if err != nil {
		r.log.Error("marshal unicast", zap.Error(err))
		return
	}
	r.send(id, ch, frame)
}

func (r *Room) send(id string, ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
	default:
		// client is slow/full - drop them
		r.log.Warn("dropping slow client", zap.String("client", id))
		close(ch)
		delete(r.clients, id)
	}
}

func (r *Room) syncAll() { r.broadcast(types.NewSync(r.state)) }

func (r *Room) syncTo(id string) { r.unicast(id, types.NewSync(r.state)) }

func (r *Room) errorTo(id, message string) { r.unicast(id, types.NewError(message)) }
