package view

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/donation"
)

func newDonationTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Submitted", Width: 17},
		{Title: "Donor", Width: 24},
		{Title: "Amount", Width: 16},
		{Title: "Method", Width: 9},
		{Title: "Phone", Width: 15},
		{Title: "Status", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func donationRows(records []*donation.Donation) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, d := range records {
		rows = append(rows, table.Row{
			FormatDate(d.SubmittedAt),
			d.DonorName,
			FormatAmount(d.Amount),
			d.Method.Label(),
			d.Phone,
			d.Status.Label(),
		})
	}

	return rows
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return s
}
