// Package importer loads donations in bulk from a donor sheet, the kind of
// spreadsheet campaigns keep before they adopt the ledger. Every row goes
// through the ledger's own create path and its validation.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/donation"
	enc "github.com/rqsn/donasi/internal/encoding"
)

type Ledger interface {
	Create(ctx context.Context, params donation.CreateParams) (*donation.Donation, error)
}

type Failure struct {
	Line   int               `json:"line"`
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

type Result struct {
	Charset  enc.Charset          `json:"charset"`
	Profile  string               `json:"profile"`
	Created  []*donation.Donation `json:"-"`
	Failures []Failure            `json:"failures"`
}

type Service struct {
	ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Import creates a donation for every valid row. Rows that fail parsing or
// validation are reported in Result.Failures. A store failure stops the
// import; rows created before it stay created.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	sheet, err := Parse(r)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Charset:  sheet.Charset,
		Profile:  sheet.Profile,
		Failures: []Failure{},
	}

	for _, row := range sheet.Rows {
		if row.Err != nil {
			res.Failures = append(res.Failures, Failure{Line: row.Line, Reason: row.Err.Error()})
			continue
		}

		d, err := s.ledger.Create(ctx, row.Params)
		if err != nil {
			var ve *apperr.ValidationError
			if errors.As(err, &ve) {
				res.Failures = append(res.Failures, Failure{Line: row.Line, Reason: "validation failed", Fields: ve.Fields})
				continue
			}

			return res, fmt.Errorf("importing line %d: %w", row.Line, err)
		}

		res.Created = append(res.Created, d)
	}

	slog.InfoContext(ctx, "donor sheet imported",
		"charset", res.Charset,
		"profile", res.Profile,
		"created", len(res.Created),
		"failed", len(res.Failures))

	return res, nil
}
