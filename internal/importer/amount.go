package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rqsn/donasi/internal/donation"
)

// parseRupiah reads an Indonesian formatted amount: "Rp 1.500.000",
// "1.500.000,00" and "50000" are all accepted. Fractions of a rupiah are not.
func parseRupiah(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	for _, prefix := range []string{"Rp.", "Rp", "IDR"} {
		if rest, ok := strings.CutPrefix(clean, prefix); ok {
			clean = rest
			break
		}
	}

	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if !d.IsInteger() {
		return 0, fmt.Errorf("amount %q has a fraction of a rupiah", s)
	}

	return d.IntPart(), nil
}

// parseMethod accepts the method labels used on recaps ("Qris", "Transfer")
// as well as longer spellings such as "Transfer Bank".
func parseMethod(s string) donation.Method {
	lower := strings.ToLower(strings.TrimSpace(s))

	for _, m := range donation.Methods {
		if strings.Contains(lower, string(m)) {
			return m
		}
	}

	return donation.Method(lower)
}
