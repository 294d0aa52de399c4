package document

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/apperr"
	"github.com/rqsn/donasi/internal/donation"
)

var recapColumns = []string{"Nama", "Jumlah", "Nomor Telepon", "Metode", "Tanggal", "Status"}

const emptyRecapRow = "Tidak ada data donasi"

type RecapContent struct {
	Date          string
	TotalApproved string
	Target        string
	Percentage    string
	Rows          [][]string
}

// RecapPercentage is total as a percentage of target with two decimals. It is
// not clamped, so an exceeded target reads "120.00". Without a target it is
// "0".
func RecapPercentage(total, target int64) string {
	if target <= 0 {
		return "0"
	}

	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(target)).
		StringFixed(2)
}

func (g *Generator) RecapContent(records []*donation.Donation, target int64) RecapContent {
	snap := aggregate.Compute(records, target)

	rows := make([][]string, 0, len(records))
	for _, d := range records {
		rows = append(rows, recapRow(d, g))
	}

	if len(rows) == 0 {
		rows = append(rows, []string{emptyRecapRow, "", "", "", "", ""})
	}

	return RecapContent{
		Date:          LongDate(g.clock()),
		TotalApproved: Rupiah(snap.TotalApproved),
		Target:        Rupiah(target),
		Percentage:    RecapPercentage(snap.TotalApproved, target),
		Rows:          rows,
	}
}

func recapRow(d *donation.Donation, g *Generator) []string {
	name := d.DonorName
	if name == "" {
		name = "N/A"
	}

	phone := d.Phone
	if phone == "" {
		phone = "N/A"
	}

	date := "N/A"
	if !d.SubmittedAt.IsZero() {
		date = ShortDate(d.SubmittedAt.In(g.org.Location))
	}

	return []string{name, Rupiah(d.Amount), phone, d.Method.Label(), date, d.Status.Label()}
}

// Recap renders the portrait A4 recap report over records.
func (g *Generator) Recap(records []*donation.Donation, target int64) (*Artifact, error) {
	now := g.clock()
	c := g.RecapContent(records, target)
	org := g.org

	p := newPage("P", now)

	p.font("", 18)
	p.color(colorBlue)
	p.centered(105, 20, "Rekapitulasi Donasi")
	p.font("", 12)
	p.color(colorGrey)
	p.centered(105, 30, org.LegalName+" - "+c.Date)
	p.rule(20, 35, 190, colorBlue)

	p.font("", 14)
	p.color(colorBlack)
	p.text(20, 50, "Ringkasan Donasi")
	p.font("", 10)
	p.text(20, 60, "Total Donasi Terkumpul: "+c.TotalApproved)
	p.text(20, 68, "Target Donasi: "+c.Target)
	p.text(20, 76, "Persentase Pencapaian: "+c.Percentage+"%")

	p.font("", 12)
	p.text(20, 90, "Data Donasi")

	end := p.table(10, 95, []float64{45, 30, 35, 22, 25, 33}, recapColumns, c.Rows,
		tableStyle{head: colorBlue, fontSize: 7, rowHeight: 6})

	y := end + 20

	p.font("", 8)
	p.color(colorGrey)
	p.centered(105, y, org.Footer)
	p.centered(105, y+5, fmt.Sprintf("Hubungi: %s | %s", org.Contact, org.Website))

	content, err := p.bytes()
	if err != nil {
		return nil, &apperr.GenerationError{Document: "recap", Err: err}
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Rekapitulasi_Donasi_%s.pdf", now.Format("2006-01-02")),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}
