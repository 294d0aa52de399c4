package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", Rupiah(0))
	assert.Equal(t, "Rp 2.000", Rupiah(2_000))
	assert.Equal(t, "Rp 1.500.000", Rupiah(1_500_000))
	assert.Equal(t, "Rp 10.000.000", Rupiah(10_000_000))
}

func TestDates(t *testing.T) {
	d := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "05 Maret 2026", LongDate(d))
	assert.Equal(t, "5/3/2026", ShortDate(d))
}

func TestRomanMonth(t *testing.T) {
	assert.Equal(t, "I", RomanMonth(time.January))
	assert.Equal(t, "IV", RomanMonth(time.April))
	assert.Equal(t, "IX", RomanMonth(time.September))
	assert.Equal(t, "XII", RomanMonth(time.December))
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "Siti Aminah", fileSafe(" Siti Aminah "))
	assert.Equal(t, "a_b_c", fileSafe("a/b\\c"))
	assert.Equal(t, "donatur", fileSafe(""))
}
