package main

import (
	"errors"
	"os"

	"github.com/ericogr/giera/internal/config"
	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/storage"
)

// loadConfigOrExit falls back to the defaults when the file does not
// exist; an unreadable or invalid file is fatal.
func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warn("Config file not found; using defaults", logging.Fields{"config_path": path})
		return config.Default()
	}
	if err != nil {
		logging.Fatal("Invalid giera configuration", err, logging.Fields{"config_path": path, "hint": "see giera_config.json for the accepted keys"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDBPath: dbPath})
	}
	logging.Info("Database ready", logging.Fields{constants.LogFieldDBPath: dbPath})
	return storage.NewSQLiteRepository(db)
}
