package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/database"
	"github.com/rqsn/donasi/internal/donation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, donor_name, phone, amount, method, status, proof_reference, submitted_at
func scanDonation(s scanner) (*donation.Donation, error) {
	var d donation.Donation

	var methodStr, statusStr string

	var proof sql.NullString

	if err := s.Scan(
		&d.ID, &d.DonorName, &d.Phone, &d.Amount, &methodStr, &statusStr, &proof, &d.SubmittedAt,
	); err != nil {
		return nil, err
	}

	d.Method = donation.Method(methodStr)
	d.Status = donation.Status(statusStr)

	if proof.Valid {
		d.ProofReference = &proof.String
	}

	return &d, nil
}

const selectColumns = `id, donor_name, phone, amount, method, status, proof_reference, submitted_at`

func (s *Store) CreateDonation(ctx context.Context, d *donation.Donation) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	query := `
		INSERT INTO donations (id, donor_name, phone, amount, method, status, proof_reference, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		d.ID,
		d.DonorName,
		d.Phone,
		d.Amount,
		d.Method,
		d.Status,
		d.ProofReference,
		d.SubmittedAt,
	)
	if err != nil {
		return database.Classify("inserting donation", err)
	}

	return nil
}

func (s *Store) GetDonation(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	query := `SELECT ` + selectColumns + ` FROM donations WHERE id = $1`

	d, err := scanDonation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("donation %s: %w", id, apperr.ErrNotFound)
		}

		return nil, database.Classify("getting donation", err)
	}

	return d, nil
}

func (s *Store) ListDonations(ctx context.Context, filter donation.ListFilter) ([]*donation.Donation, error) {
	query := `SELECT ` + selectColumns + ` FROM donations`

	var args []any

	if filter.Status != nil {
		query += " WHERE status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY submitted_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify("listing donations", err)
	}
	defer rows.Close()

	var out []*donation.Donation

	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning donation: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterating donations", err)
	}

	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE donations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return database.Classify("updating donation status", err)
	}

	return requireAffected(res, id)
}

func (s *Store) DeleteDonation(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return database.Classify("deleting donation", err)
	}

	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("donation %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}
