package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/rqsn/donasi/internal/encoding"
)

func decodeAll(t *testing.T, in []byte) (string, encoding.Charset) {
	t.Helper()

	r, cs, err := encoding.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), cs
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	input := "Nama;Jumlah\nRené Siregar;Rp 50.000\n"

	got, cs := decodeAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, cs)
}

func TestDecode_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, "Nama;Jumlah\n"...)

	got, cs := decodeAll(t, input)
	assert.Equal(t, "Nama;Jumlah\n", got)
	assert.Equal(t, encoding.UTF8BOM, cs)
}

func TestDecode_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	input, err := enc.Bytes([]byte("Nama;Jumlah\nRené;2.000\n"))
	require.NoError(t, err)

	got, cs := decodeAll(t, input)
	assert.Equal(t, "Nama;Jumlah\nRené;2.000\n", got)
	assert.Equal(t, encoding.UTF16LE, cs)
}

func TestDecode_Windows1252(t *testing.T) {
	// "René" with é as 0xE9.
	input := []byte{'N', 'a', 'm', 'a', ';', 'J', 'u', 'm', 'l', 'a', 'h', '\n', 'R', 'e', 'n', 0xE9, ';', '5', '0', '\n'}

	got, _ := decodeAll(t, input)
	assert.Equal(t, "Nama;Jumlah\nRené;50\n", got)
}

func TestDecode_Empty(t *testing.T) {
	got, cs := decodeAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, cs)
}
