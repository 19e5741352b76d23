package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericogr/giera/internal/api"
	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/gateway"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/service"
)

func main() {
	warnEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	repo := createRepositoryOrExit(dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := gateway.NewDispatcher(cfg.Workers, cfg.QueueSize)
	dispatcher.Start(context.Background())

	svc := service.New(repo, dispatcher, service.Options{
		Characters:       cfg.Characters,
		Map:              cfg.Map,
		UpgradeCost:      cfg.UpgradeCost,
		LeaderboardLimit: cfg.LeaderboardLimit,
	})
	startRunSweeper(ctx, svc, constants.RunSweepInterval, constants.RunIdleTimeout)

	router := api.NewRouter(api.NewGameHandler(svc), api.NewAuthHandler(cfg.SessionTTL))
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("server shutdown failed", err, nil)
	}
	// drain pending writes after the last request is done
	if err := dispatcher.Close(); err != nil {
		logging.Error("dispatcher drain failed", err, nil)
	}
	logging.Info("Server stopped", nil)
}

// warnEnvVars reports unset variables. The server still runs: guests can
// play without Google credentials and sessions fall back to a dev secret.
func warnEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Warn("Environment variable not set", logging.Fields{"var": v})
		}
	}
}
