// Package repository provides SQLite-backed persistence: a generic blob
// store keyed by path-like strings and the settings document on top of it.
package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances sharing one connection
type Repositories struct {
	Blob     *BlobRepository
	Settings *SettingsRepository
	DB       *sqlx.DB
}

// NewRepositories opens the database and creates all repositories.
// superAdmins seed the admin list of a lazily created settings document.
func NewRepositories(ctx context.Context, cfg Config, superAdmins []string) (*Repositories, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// optimize SQLite settings
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	// initialize schema
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	blob := NewBlobRepository(db)
	return &Repositories{
		Blob:     blob,
		Settings: NewSettingsRepository(blob, superAdmins),
		DB:       db,
	}, nil
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}
