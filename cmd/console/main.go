package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookello/booking-console/internal/api"
	"github.com/bookello/booking-console/internal/api/metrics"
	"github.com/bookello/booking-console/internal/core/ports"
	"github.com/bookello/booking-console/internal/infrastructure/backend"
	"github.com/bookello/booking-console/internal/infrastructure/config"
	"github.com/bookello/booking-console/internal/infrastructure/store"
	"github.com/bookello/booking-console/pkg/logger"
)

// @title        Booking Console API
// @version      1.0
// @description  Session and authorization gateway for the booking platform.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sessions ports.SessionStore
		rdb      *redis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		var err error
		rdb, err = store.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = store.NewRedisStore(rdb, log)
	default:
		sessions = store.NewFileStore(cfg.Session.StateDir, log)
	}

	// The session load must resolve before any gate decision is meaningful;
	// until it does, gates answer Pending.
	if err := sessions.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("session load failed")
	}
	if sessions.Current() != nil {
		metrics.SessionLoadsTotal.WithLabelValues("restored").Inc()
		log.Info().Str("email", sessions.Current().Email).Msg("session restored")
	} else {
		metrics.SessionLoadsTotal.WithLabelValues("anonymous").Inc()
		log.Info().Msg("starting anonymous")
	}

	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	e := api.NewRouter(sessions, gateway, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("booking console up")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
