package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "nol"},
		{1, "satu rupiah"},
		{11, "sebelas rupiah"},
		{19, "sembilan belas rupiah"},
		{20, "dua puluh rupiah"},
		{45, "empat puluh lima rupiah"},
		{100, "ratus rupiah"},
		{250, "dua ratus lima puluh rupiah"},
		{1_000, "seribu rupiah"},
		{2_000, "dua ribu rupiah"},
		{11_000, "sebelas ribu rupiah"},
		{50_000, "lima puluh ribu rupiah"},
		{1_500_000, "satu juta lima ratus ribu rupiah"},
		{2_050_000, "dua juta lima puluh ribu rupiah"},
		{1_000_001, "satu juta satu rupiah"},
		{3_000_000_000, "tiga miliar rupiah"},
		{1_000_000_000_000, "satu triliun rupiah"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.amount))
		})
	}
}

func TestChunkWords(t *testing.T) {
	assert.Equal(t, "ratus sebelas", chunkWords(111))
	assert.Equal(t, "sembilan ratus sembilan puluh sembilan", chunkWords(999))
	assert.Equal(t, "tujuh", chunkWords(7))
}
