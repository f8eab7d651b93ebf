// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (logging,
// database, identity) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kudoslabs/kudos/internal/config"
	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/database"
	"github.com/kudoslabs/kudos/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle
// coordination, logging, database access, and the identity collaborator.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Identity  identity.System
}

// New creates an Infrastructure from the application configuration. It
// initializes all systems but does not start them; call Start
// separately. Missing database or identity credentials are not an
// error: those systems come up unconfigured and degrade their
// operations instead.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Identity:  identity.New(&cfg.Identity, logger),
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator
// for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
