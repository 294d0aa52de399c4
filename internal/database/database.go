package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rqsn/donasi/internal/apperr"
)

// insufficientPrivilege is the SQLSTATE Postgres returns when a role lacks a
// grant or a row-level policy rejects the statement.
const insufficientPrivilege = "42501"

func New(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Classify maps a driver error onto the application taxonomy: privilege
// failures become apperr.ErrPermission, anything else an
// apperr.IntegrationError tagged with op.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == insufficientPrivilege {
		return fmt.Errorf("%s: %w", op, apperr.ErrPermission)
	}

	return apperr.Integration(op, err)
}
