// Package app assembles the services shared by the API server and the admin
// console from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/config"
	"github.com/rqsn/donasi/internal/database"
	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
	donationStore "github.com/rqsn/donasi/internal/donation/store"
	"github.com/rqsn/donasi/internal/memstore"
	"github.com/rqsn/donasi/internal/target"
	targetStore "github.com/rqsn/donasi/internal/target/store"
)

type App struct {
	Config   *config.Config
	Ledger   *donation.Service
	Targets  *target.Service
	Tracker  *aggregate.Tracker
	Docs     *document.Generator
	Listener *database.Listener // nil for the memory backend

	db *sql.DB
}

// New opens the configured backend, applies migrations for Postgres and
// builds the services. Close releases the database.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	var (
		donations donation.Repository
		targets   target.Repository
	)

	switch cfg.App.Backend {
	case config.BackendMemory:
		slog.Warn("using in-memory storage, data is lost on exit")

		donations = memstore.NewDonationStore()
		targets = memstore.NewTargetStore()
	default:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		a.db = db
		donations = donationStore.New(db)
		targets = targetStore.New(db)
	}

	a.Ledger = donation.NewService(donations)
	a.Targets = target.NewService(targets)
	a.Tracker = aggregate.NewTracker(a.Ledger, a.Targets)
	a.Docs = document.NewGenerator(cfg.Organization(), cfg.Org.CertificatePath)

	if a.db != nil {
		a.Listener = database.NewListener(cfg.ConnectionString())
		a.Listener.Handle(database.ChannelDonations, a.Ledger.Refresh)
		a.Listener.Handle(database.ChannelTarget, a.Targets.Refresh)
	}

	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}
