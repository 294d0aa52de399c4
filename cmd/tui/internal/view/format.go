package view

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/document"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// FormatAmount renders a rupiah amount as "Rp 1.500.000".
func FormatAmount(amount int64) string {
	return document.Rupiah(amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD HH:MM.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ParseAmount accepts "1500000", "1.500.000" or "Rp 1.500.000".
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.NewReplacer(".", "", " ", "").Replace(s)

	if s == "" {
		return 0, errors.New("amount is required")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("amount must be a whole number of rupiah")
	}

	return n, nil
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
