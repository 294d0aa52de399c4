package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/rqsn/donasi/internal/encoding"
	"github.com/rqsn/donasi/internal/donation"
)

var ErrUnknownLayout = errors.New("no matching donor sheet layout: expected columns Nama, Jumlah, Nomor Telepon, Metode")

var delimiters = []rune{';', ',', '\t'}

// Row is one data row of a sheet. Err is set when the row could not be turned
// into CreateParams.
type Row struct {
	Line   int
	Params donation.CreateParams
	Err    error
}

type Sheet struct {
	Charset enc.Charset
	Profile string
	Rows    []Row
}

// Parse reads a donor sheet. The delimiter and header row are detected.
func Parse(r io.Reader) (*Sheet, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readCSV(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return &Sheet{
			Charset: charset,
			Profile: profile.Name,
			Rows:    parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1),
		}, nil
	}

	return nil, ErrUnknownLayout
}

func readCSV(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips blank rows. headerIdx is the 0-based header position, used
// to report 1-based line numbers.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerIdx int) []Row {
	var out []Row

	for i, row := range rows {
		line := headerIdx + i + 2

		if blank(row) {
			continue
		}

		r := Row{
			Line: line,
			Params: donation.CreateParams{
				DonorName: cellValue(row, cols[p.NameCol]),
				Phone:     cellValue(row, cols[p.PhoneCol]),
				Method:    parseMethod(cellValue(row, cols[p.MethodCol])),
			},
		}

		if idx, ok := cols[p.ProofCol]; ok {
			if proof := cellValue(row, idx); proof != "" {
				r.Params.ProofReference = &proof
			}
		}

		amount, err := parseRupiah(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			r.Err = err
		}

		r.Params.Amount = amount
		out = append(out, r)
	}

	return out
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
