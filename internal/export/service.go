// Package export writes the campaign documents to a local directory.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rqsn/donasi/internal/document"
	"github.com/rqsn/donasi/internal/donation"
)

type Ledger interface {
	List(ctx context.Context, filter donation.ListFilter) ([]*donation.Donation, error)
}

type Targets interface {
	Get(ctx context.Context) (int64, error)
}

// Item is one approved donation with the documents written for it.
type Item struct {
	Donation        *donation.Donation
	InvoicePath     string
	CertificatePath string
}

// Result describes one export run.
type Result struct {
	RecapPath string
	Items     []Item
}

type Options struct {
	// Invoices also writes an invoice per approved donation, and the
	// certificate for large ones, under <dir>/invoices.
	Invoices bool
}

// Service handles the export of the recap and per-donation documents.
type Service struct {
	ledger  Ledger
	targets Targets
	docs    *document.Generator
}

func NewService(ledger Ledger, targets Targets, docs *document.Generator) *Service {
	return &Service{
		ledger:  ledger,
		targets: targets,
		docs:    docs,
	}
}

// Export writes the recap of every donation to outputDir and, when asked,
// the documents of every approved donation.
func (s *Service) Export(ctx context.Context, outputDir string, opts Options) (*Result, error) {
	records, err := s.ledger.List(ctx, donation.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}

	target, err := s.targets.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading target: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	recap, err := s.docs.Recap(records, target)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	res.RecapPath, err = write(outputDir, recap.Filename, recap.Content)
	if err != nil {
		return nil, err
	}

	if !opts.Invoices {
		return res, nil
	}

	dir := filepath.Join(outputDir, "invoices")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating invoice directory: %w", err)
	}

	for _, d := range records {
		if d.Status != donation.StatusApproved {
			continue
		}

		item, err := s.exportDonation(d, dir)
		if err != nil {
			return nil, fmt.Errorf("exporting donation %s: %w", d.ID, err)
		}

		res.Items = append(res.Items, item)
	}

	return res, nil
}

func (s *Service) exportDonation(d *donation.Donation, dir string) (Item, error) {
	item := Item{Donation: d}

	// Generated names only carry the donor and a timestamp.
	prefix := d.ID.String()[:8] + "_"

	invoice, err := s.docs.Invoice(d)
	if err != nil {
		return item, err
	}

	if item.InvoicePath, err = write(dir, prefix+invoice.Filename, invoice.Content); err != nil {
		return item, err
	}

	if !d.Large() {
		return item, nil
	}

	cert, err := s.docs.Certificate(d)
	if errors.Is(err, document.ErrCertificateUnavailable) {
		return item, nil
	}

	if err != nil {
		return item, err
	}

	if item.CertificatePath, err = write(dir, prefix+cert.Filename, cert.Content); err != nil {
		return item, err
	}

	return item, nil
}

func write(dir, name string, content []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}

// GenerateSummary lists what an export wrote, one line per donation.
func (s *Service) GenerateSummary(res *Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Recap: %s\n", res.RecapPath))

	if len(res.Items) > 0 {
		sb.WriteString("\n")
	}

	for _, item := range res.Items {
		d := item.Donation

		files := filepath.Base(item.InvoicePath)
		if item.CertificatePath != "" {
			files += ", " + filepath.Base(item.CertificatePath)
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s\n",
			d.SubmittedAt.Format("2006-01-02"), d.DonorName, document.Rupiah(d.Amount), files))
	}

	return sb.String()
}
