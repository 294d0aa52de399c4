// Package document produces the campaign's printable artifacts: donor
// invoices, the recap report and certificates for large donations.
package document

import (
	"math/rand/v2"
	"time"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
)

// Artifact is a generated document ready to be sent or saved.
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Organization is the issuing institution as printed on documents.
type Organization struct {
	Name       string
	Subtitle   string
	Tagline    string
	Email      string
	LegalName  string
	AdminTitle string
	AdminName  string
	AdminOrg   string
	City       string
	Signatory  string
	Contact    string
	Website    string
	Footer     string
	Location   *time.Location
	Logo       []byte // PNG, optional
	Signature  []byte // PNG, optional
}

func DefaultOrganization() Organization {
	return Organization{
		Name:       "RUMAH QUR'AN",
		Subtitle:   "SAYYIDAH NAFISAH",
		Tagline:    "TERUNTUK ANAK YATIM & DHU'AFA",
		Email:      "rqs-office@gmail.com",
		LegalName:  `Lembaga Kesejahteraan Sosial "RQSN"`,
		AdminTitle: "Admin Nadzir",
		AdminName:  "Ahmad Sarmadi",
		AdminOrg:   "Rumah Quran Assyaidah Nafisah",
		City:       "Serang",
		Signatory:  "Ahmad Sarmadi, S.E., M.Si",
		Contact:    "+62 812-9633-7953",
		Website:    "rqsn.org",
		Footer:     "Dokumen ini dibuat oleh sistem manajemen donasi Wakaf.",
		Location:   time.FixedZone("WIB", 7*60*60),
	}
}

type Generator struct {
	org             Organization
	certificatePath string
	now             func() time.Time
	invoiceSeq      func() int
}

type Option func(*Generator)

// WithClock fixes the time printed on documents and used in filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithInvoiceSequence replaces the random invoice counter. fn must return a
// value in 1..9999.
func WithInvoiceSequence(fn func() int) Option {
	return func(g *Generator) { g.invoiceSeq = fn }
}

// NewGenerator builds a generator. certificatePath points at the pre-rendered
// certificate image handed out for large donations.
func NewGenerator(org Organization, certificatePath string, opts ...Option) *Generator {
	if org.Location == nil {
		org.Location = time.Local
	}

	g := &Generator{
		org:             org,
		certificatePath: certificatePath,
		now:             time.Now,
		invoiceSeq:      func() int { return rand.IntN(9999) + 1 },
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Generator) clock() time.Time {
	return g.now().In(g.org.Location)
}
