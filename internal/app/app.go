package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/dori/todomaster/internal/cloud"
	"github.com/dori/todomaster/internal/config"
	"github.com/dori/todomaster/internal/manager"
	"github.com/dori/todomaster/internal/notify"
	"github.com/dori/todomaster/internal/store"
)

// App holds the application state and dependencies
type App struct {
	Manager  *manager.Manager
	Store    *store.Store
	Notifier *notify.Notifier
	Config   *config.Config
	Logger   *slog.Logger
	lockFile *flock.Flock
}

// New creates a new application instance: config, store, remote client, and
// the task manager wired together. cfg may be nil to use the layered loader.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		loaded, err := config.NewLoader(logger).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Notifier: notify.NewNotifier(),
	}
	app.Notifier.SetEnabled(cfg.NotificationsEnabled())

	// Exclusive lock: the slot store is a single-writer resource
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	app.Store = st

	var remote cloud.Client
	if cfg.SyncEnabled() {
		remote = cloud.NewHTTPClient(cfg.Remote.Endpoint, cfg.Remote.Token, nil)
	}

	app.Manager = manager.New(manager.Options{
		Store:     st,
		Logger:    logger,
		Remote:    remote,
		Reminders: notify.NewScheduler(app.Notifier, logger),
		Notifier:  app.Notifier,
	})
	if err := app.Manager.Load(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}

	return app, nil
}

// SyncEnabled reports whether a remote client was configured
func (a *App) SyncEnabled() bool {
	return a.Config.SyncEnabled()
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "todomaster.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of todomaster is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
