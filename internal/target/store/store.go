package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/database"
	"github.com/rqsn/donasi/internal/target"
)

// Store keeps the target in a single-row table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetTarget(ctx context.Context) (*target.Config, error) {
	var cfg target.Config

	err := s.db.QueryRowContext(ctx, `SELECT amount, updated_at FROM target WHERE id = 1`).
		Scan(&cfg.Amount, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, database.Classify("getting target", err)
	}

	return &cfg, nil
}

func (s *Store) SaveTarget(ctx context.Context, cfg *target.Config) error {
	query := `
		INSERT INTO target (id, amount, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, cfg.Amount, cfg.UpdatedAt); err != nil {
		return database.Classify("saving target", err)
	}

	return nil
}
