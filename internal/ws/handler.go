package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/listup/listup-server/internal/hub"
	"github.com/listup/listup-server/internal/room"
	"github.com/listup/listup-server/pkg/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades GET /ws?code=XYZ to a websocket and bridges it to the room
// actor for that code. The room is created on first connection, matching the
// reference server's connect-to-create semantics.
func Handler(h *hub.Hub, log *zap.Logger, cursorRate float64) http.HandlerFunc {
	log = log.Named("ws")

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		rm := h.Ensure(code)

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := randID(8)
		out := make(chan []byte, 32)
		clog := log.With(zap.String("room", code), zap.String("client", clientID))

		rm.Inbox() <- room.Connect{ClientID: clientID, Outbox: out}
		defer func() { rm.Inbox() <- room.Disconnect{ClientID: clientID} }()

		// writer: drains the outbox the room assigns this client. The room
		// closes the channel when it drops or disconnects the client.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for frame := range out {
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := conn.Write(ctx, websocket.MessageText, frame)
				cancel()
				if err != nil {
					return
				}
			}
			conn.Close(websocket.StatusNormalClosure, "room closed")
		}()

		// cursor frames are best-effort and high-frequency; over-rate ones
		// are dropped here so they never reach the actor
		burst := int(cursorRate)
		if burst < 1 {
			burst = 1
		}
		cursorLimiter := rate.NewLimiter(rate.Limit(cursorRate), burst)

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				clog.Debug("dropping malformed frame", zap.Error(err))
				writeError(r.Context(), conn, "Invalid message")
				continue
			}

			if cm.Type == "cursor-move" && !cursorLimiter.Allow() {
				continue
			}

			rm.Inbox() <- room.FromClient{ClientID: clientID, Msg: cm}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, message string) {
	frame, err := json.Marshal(types.NewError(message))
	if err != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, frame)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
