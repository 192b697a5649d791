package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/listup/listup-server/internal/config"
	"github.com/listup/listup-server/internal/httpapi"
	"github.com/listup/listup-server/internal/hub"
	"github.com/listup/listup-server/internal/packs"
	"github.com/listup/listup-server/internal/room"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *packs.Store
	if cfg.DatabaseURL != "" {
		store, err = packs.OpenStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("community pack store", zap.Error(err))
		}
	} else {
		log.Info("DATABASE_URL not set, community packs disabled")
	}

	h := hub.NewHub(ctx, log, room.Options{AllowSpectatorHost: cfg.AllowSpectatorHost}, cfg.RoomIdleTimeout)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.SetupRoutes(h, store, cfg, log),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
