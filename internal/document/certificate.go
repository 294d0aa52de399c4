package document

import (
	"errors"
	"fmt"
	"os"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/donation"
)

// ErrCertificateUnavailable is returned for donations at or below
// donation.LargeDonationThreshold.
var ErrCertificateUnavailable = errors.New("certificate is only issued for donations above Rp 1.000.000")

// Certificate returns the pre-rendered certificate image for a large donation.
func (g *Generator) Certificate(d *donation.Donation) (*Artifact, error) {
	if !d.Large() {
		return nil, ErrCertificateUnavailable
	}

	if g.certificatePath == "" {
		return nil, &apperr.GenerationError{Document: "certificate", Err: errors.New("no certificate asset configured")}
	}

	content, err := os.ReadFile(g.certificatePath)
	if err != nil {
		return nil, &apperr.GenerationError{Document: "certificate", Err: fmt.Errorf("reading asset: %w", err)}
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Certificate_%s_%d.jpg", fileSafe(d.DonorName), g.clock().UnixMilli()),
		ContentType: ContentTypeJPEG,
		Content:     content,
	}, nil
}
