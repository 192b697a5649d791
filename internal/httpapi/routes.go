package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/config"
	"github.com/listup/listup-server/internal/hub"
	"github.com/listup/listup-server/internal/packs"
	"github.com/listup/listup-server/internal/ws"
)

// SetupRoutes builds the router with the hub and stores injected. A nil
// community store disables the community pack endpoints.
func SetupRoutes(h *hub.Hub, store *packs.Store, cfg config.Config, log *zap.Logger) http.Handler {
	api := &api{hub: h, store: store, cfg: cfg, log: log.Named("http")}

	r := chi.NewRouter()

	r.Post("/rooms", api.createRoom)
	r.Get("/rooms/{code}/qr", api.roomQR)
	r.Get("/ws", ws.Handler(h, log, cfg.CursorRate))

	r.Get("/packs/presets", api.listPresets)
	r.Get("/packs/presets/{id}/items", api.presetItems)

	r.Get("/packs/community", api.listCommunity)
	r.Get("/packs/community/search", api.searchCommunity)
	r.Post("/packs/community", api.createCommunity)
	r.Post("/packs/community/{id}/upvote", api.upvoteCommunity)
	r.Post("/packs/community/{id}/play", api.playCommunity)

	r.Get("/healthz", api.healthz)
	r.Get("/version", api.version)

	return r
}
