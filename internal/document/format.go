package document

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount with Indonesian digit grouping: "Rp 1.500.000".
func Rupiah(amount int64) string {
	return "Rp " + idPrinter.Sprintf("%d", amount)
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate renders "05 Oktober 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// ShortDate renders "5/10/2026".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

var romanMonths = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

func RomanMonth(m time.Month) string {
	return romanMonths[m-1]
}

// fileSafe keeps a donor name usable inside a filename.
func fileSafe(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "donatur"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}

		return r
	}, name)
}
