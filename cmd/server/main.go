package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialise application")
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close stores")
		}
	}()

	logger.Info().Str("database", cfg.Database.Path).Str("preferences", cfg.Preferences.Path).Msg("Connected to stores")

	router := api.NewRouter(a.Services, cfg, logger)

	// PDF rendering may take up to the render timeout, so writes get at least that long.
	wt := writeTimeout
	if rt := cfg.Render.Timeout.Duration + 5*time.Second; rt > wt {
		wt = rt
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: wt,
		IdleTimeout:  idleTimeout,
	}

	a.Scheduler.Start()

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("public_url", cfg.Server.PublicBaseURL).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed to start")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	a.Scheduler.Stop(ctx)

	logger.Info().Msg("Server exited")
}
