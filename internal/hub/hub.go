package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/room"
)

type HubMsg interface{ isHubMsg() }

type EnsureRoom struct {
	Code  string
	Reply chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

type reapTick struct{}

func (EnsureRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}
func (reapTick) isHubMsg()    {}

type Hub struct {
	inbox       chan HubMsg
	rooms       map[string]*room.Room
	roomOpts    room.Options
	idleTimeout time.Duration
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub starts the hub actor. Rooms idle (no connected clients) for longer
// than idleTimeout are shut down and removed; zero disables reaping.
func NewHub(parent context.Context, log *zap.Logger, roomOpts room.Options, idleTimeout time.Duration) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:       make(chan HubMsg, 64),
		rooms:       make(map[string]*room.Room),
		roomOpts:    roomOpts,
		idleTimeout: idleTimeout,
		log:         log.Named("hub"),
		ctx:         ctx,
		cancel:      cancel,
	}
	go h.loop()
	if idleTimeout > 0 {
		go h.reapLoop()
	}
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Ensure returns the room for code, creating it on first use.
func (h *Hub) Ensure(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	h.inbox <- EnsureRoom{Code: code, Reply: reply}
	return <-reply
}

// Get returns the room for code, or nil.
func (h *Hub) Get(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	h.inbox <- GetRoom{Code: code, Reply: reply}
	return <-reply
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureRoom:
				if r := h.rooms[msg.Code]; r != nil {
					msg.Reply <- r
					break
				}
				r := room.NewRoom(h.ctx, msg.Code, h.log, h.roomOpts)
				h.rooms[msg.Code] = r
				h.log.Info("room created", zap.String("room", msg.Code))
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // may be nil

			case RemoveRoom:
				if r := h.rooms[msg.Code]; r != nil {
					r.Inbox() <- room.Shutdown{}
					delete(h.rooms, msg.Code)
				}

			case reapTick:
				h.reapIdle()

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for code, r := range h.rooms {
		r.Inbox() <- room.Shutdown{}
		delete(h.rooms, code)
	}
}

func (h *Hub) reapLoop() {
	ticker := time.NewTicker(h.idleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			select {
			case h.inbox <- reapTick{}:
			case <-h.ctx.Done():
				return
			}
		}
	}
}

// reapIdle removes rooms that have had no clients past the idle cutoff.
func (h *Hub) reapIdle() {
	cutoff := time.Now().Add(-h.idleTimeout)
	for code, r := range h.rooms {
		reply := make(chan room.View, 1)
		r.Inbox() <- room.GetView{Reply: reply}

		var v room.View
		select {
		case v = <-reply:
		case <-time.After(time.Second):
			// unresponsive room, leave it for the next pass
			h.log.Warn("room did not answer view request", zap.String("room", code))
			continue
		}

		if v.NumClients == 0 && v.LastActive.Before(cutoff) {
			h.log.Info("reaping idle room", zap.String("room", code))
			r.Inbox() <- room.Shutdown{}
			delete(h.rooms, code)
		}
	}
}
