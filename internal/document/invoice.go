package document

import (
	"fmt"

	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/donation"
)

const verse = "Sesungguhnya Tuhanmu melapangkan rezeki bagi siapa yang dikehendaki-Nya di antara " +
	"hamba-hamba-Nya dan menyempitkan bagi (siapa yang dikehendaki-Nya). Dan barang apa saja yang " +
	"kamu nafkahkan, maka Allah akan menggantinya dan Dialah Pemberi rezeki yang sebaik-baiknya."

type InvoiceContent struct {
	Number      string
	Date        string
	PlaceDate   string
	Name        string
	Contact     string
	Description string
	Quantity    int
	Amount      string
	AmountWords string
}

// InvoiceContent assembles the text of an invoice for d. The number is drawn
// fresh on every call and is not guaranteed unique.
func (g *Generator) InvoiceContent(d *donation.Donation) InvoiceContent {
	now := g.clock()

	description := "Donasi"
	if d.Large() {
		description = "Wakaf Uang"
	}

	contact := d.Phone
	if contact == "" {
		contact = "Not provided"
	}

	return InvoiceContent{
		Number:      fmt.Sprintf("%04d/%s/%d", g.invoiceSeq(), RomanMonth(now.Month()), now.Year()),
		Date:        ShortDate(now),
		PlaceDate:   g.org.City + ", " + LongDate(now),
		Name:        d.DonorName,
		Contact:     contact,
		Description: description,
		Quantity:    1,
		Amount:      Rupiah(d.Amount),
		AmountWords: Words(d.Amount),
	}
}

// Invoice renders a landscape A4 invoice for a single donation.
func (g *Generator) Invoice(d *donation.Donation) (*Artifact, error) {
	now := g.clock()
	c := g.InvoiceContent(d)
	org := g.org

	p := newPage("L", now)

	p.image("logo", org.Logo, 230, 10, 30, 30)

	p.font("B", 12)
	p.color(colorBlack)
	p.centered(150, 15, org.Name)
	p.font("", 10)
	p.centered(150, 22, org.Subtitle)
	p.centered(150, 29, org.Tagline)
	p.centered(150, 36, org.Email)

	p.font("B", 16)
	p.text(15, 20, "Invoice")
	p.font("", 10)
	p.text(15, 30, "Number: "+c.Number)
	p.text(15, 37, "Date: "+c.Date)

	p.text(15, 50, "Purchaser Information")
	p.text(15, 57, "Name: "+c.Name)
	p.text(15, 64, "Contact: "+c.Contact)

	p.centered(150, 50, org.AdminTitle)
	p.centered(150, 57, org.AdminName)
	p.centered(150, 64, org.AdminOrg)

	p.rule(15, 70, 275, colorRule)

	end := p.table(15, 75, []float64{140, 40, 80},
		[]string{"Description", "Quantity", "Amount"},
		[][]string{{c.Description, fmt.Sprint(c.Quantity), c.Amount}},
		tableStyle{head: colorLightBlue, fontSize: 10, rowHeight: 10, zebra: true},
	)

	y := end + 20

	p.font("I", 10)
	p.text(15, y, "Terbilang: "+c.AmountWords)

	p.font("", 10)
	p.pdf.SetXY(15, y+6)
	p.pdf.MultiCell(120, 5, p.tr(verse), "", "L", false)
	p.text(15, y+40, "Thank you")

	p.centered(230, y, c.PlaceDate)
	p.image("signature", org.Signature, 200, y+5, 60, 30)
	p.centered(230, y+40, org.Signatory)

	content, err := p.bytes()
	if err != nil {
		return nil, &apperr.GenerationError{Document: "invoice", Err: err}
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Invoice_%s_%d.pdf", fileSafe(d.DonorName), now.UnixMilli()),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}
