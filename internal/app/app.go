// Package app wires configuration, logging, storage and the snapshot service.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/snapshot"
	"github.com/bobmcallan/folio/internal/storage"
)

// App holds the initialized configuration, storage and services.
// It is the shared core used by cmd/folio and integration tests.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	SnapshotService  interfaces.SnapshotService
	Metrics          *snapshot.Metrics
	DefaultPortfolio string
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, FOLIO_CONFIG, folio.toml
// next to the binary, then config/folio.toml for development. The result may not exist;
// LoadConfig skips missing files and falls back to defaults.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes storage and the snapshot service.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewAppWithConfig(config)
}

// NewAppWithConfig initializes the app from an already loaded configuration.
func NewAppWithConfig(config *common.Config) (*App, error) {
	startupStart := time.Now()

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var metrics *snapshot.Metrics
	if config.Metrics.Enabled {
		metrics = snapshot.NewMetrics()
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		SnapshotService:  snapshot.NewService(storageManager, config, metrics, logger.WithComponent("snapshot")),
		Metrics:          metrics,
		DefaultPortfolio: config.Storage.Portfolio,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Snapshot computes a snapshot for portfolioID, or the default portfolio when empty.
func (a *App) Snapshot(ctx context.Context, portfolioID string, opts interfaces.SnapshotOptions) (*models.Snapshot, error) {
	if portfolioID == "" {
		portfolioID = a.DefaultPortfolio
	}
	return a.SnapshotService.GetSnapshot(ctx, portfolioID, opts)
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
		a.Storage = nil
	}
}
