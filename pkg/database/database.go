// Package database manages the PostgreSQL connection pool with lifecycle
// coordination. A deployment without storage credentials degrades to an
// unconfigured system instead of failing at startup: Connection returns
// ErrNotConfigured and domain systems surface that as an explicit failure.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kudoslabs/kudos/pkg/lifecycle"
)

// System manages the connection pool and its lifecycle hooks.
type System interface {
	// Configured reports whether storage credentials were supplied.
	Configured() bool
	// Connection returns the pool, or ErrNotConfigured when credentials
	// are absent.
	Connection() (*sql.DB, error)
	// Start registers startup and shutdown hooks with the coordinator.
	// It is a no-op for an unconfigured system.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a database system. When cfg lacks credentials the returned
// system is unconfigured but valid; otherwise sql.Open validates the DSN
// and configures the pool without connecting (Start establishes the
// connection).
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "database")

	if !cfg.Configured() {
		logger.Warn("database credentials absent; persistence disabled")
		return &database{logger: logger}, nil
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger,
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Configured() bool {
	return d.conn != nil
}

func (d *database) Connection() (*sql.DB, error) {
	if d.conn == nil {
		return nil, ErrNotConfigured
	}
	return d.conn, nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	if d.conn == nil {
		return nil
	}

	d.logger.Info("starting database connection")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(pingCtx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
