package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/internal/config"
	"github.com/jakechorley/oncall-rota/pkg/db"
	"github.com/jakechorley/oncall-rota/pkg/postgres"
)

// ErrNoDatabase is returned by commands that need a database when no URL is configured
var ErrNoDatabase = errors.New("no database configured (set --database-url or ROTA_DATABASE_URL)")

// AppContext holds the application dependencies shared across all commands.
// Config and database are opened on first use so commands only pay for what they need.
type AppContext struct {
	ConfigPath  string
	DatabaseURL string
	Logger      *zap.Logger
	Ctx         context.Context

	// Now returns the current time; tests replace it
	Now func() time.Time

	cfg      *config.Config
	database db.Database
}

// Config loads the configuration from ConfigPath, or searches for it when unset
func (a *AppContext) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	var err error
	if a.ConfigPath != "" {
		a.Logger.Debug("Loading configuration", zap.String("path", a.ConfigPath))
		a.cfg, err = config.LoadFromPath(a.ConfigPath)
	} else {
		a.Logger.Debug("Searching for configuration", zap.String("file", config.FileName))
		a.cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a.Logger.Debug("Configuration loaded successfully", zap.Int("humans", len(a.cfg.Humans)))
	return a.cfg, nil
}

// Database connects to the configured database, failing if none is configured
func (a *AppContext) Database() (db.Database, error) {
	database, err := a.OptionalDatabase()
	if err != nil {
		return nil, err
	}
	if database == nil {
		return nil, ErrNoDatabase
	}
	return database, nil
}

// OptionalDatabase connects to the configured database, returning nil if none is configured
func (a *AppContext) OptionalDatabase() (db.Database, error) {
	if a.database != nil {
		return a.database, nil
	}
	if a.DatabaseURL == "" {
		return nil, nil
	}

	a.Logger.Info("Connecting to database")
	pg, err := postgres.NewDB(a.Ctx, a.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.Logger.Debug("Database connected successfully")

	a.database = pg
	return a.database, nil
}

// Close releases the database connection if one was opened
func (a *AppContext) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

func (a *AppContext) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
