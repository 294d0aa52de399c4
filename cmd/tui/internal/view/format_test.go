package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain", input: "1500000", want: 1_500_000},
		{name: "grouped", input: "1.500.000", want: 1_500_000},
		{name: "with currency", input: "Rp 100.000.000", want: 100_000_000},
		{name: "surrounding space", input: "  2000 ", want: 2_000},
		{name: "empty", input: "", wantErr: true},
		{name: "decimal comma", input: "1.500,50", wantErr: true},
		{name: "words", input: "sejuta", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", FormatAmount(1_500_000))
	assert.Equal(t, "Rp 0", FormatAmount(0))
}
