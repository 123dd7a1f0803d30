package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/userforge/user-api/internal/api"
	"github.com/userforge/user-api/internal/infrastructure/config"
	"github.com/userforge/user-api/internal/infrastructure/db/sqlite"
	"github.com/userforge/user-api/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db, err := sqlite.Connect(sqlite.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := sqlite.SeedAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Password, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("admin seed failed")
	}
	cancel()

	e := api.NewRouter(db, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
