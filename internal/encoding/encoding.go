// Package encoding normalizes uploaded spreadsheets to UTF-8. Sheets exported
// from office suites on Windows arrive as UTF-16 or Windows-1252 as often as
// UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the source encoding that was detected.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 (BOM)"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
	decoder func() *encoding.Decoder
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8BOM, nil},
	{[]byte{0xFF, 0xFE}, UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// Decode returns a reader yielding r as UTF-8 together with the charset it was
// read as. A byte order mark wins; otherwise valid UTF-8 passes through, then
// chardet is consulted, and anything undecided is read as Windows-1252.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, b.charset, nil
		}

		return transform.NewReader(br, b.decoder()), b.charset, nil
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	switch guess(head) {
	case UTF8:
		return br, UTF8, nil
	case ISO88599:
		return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), ISO88599, nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}

func guess(head []byte) Charset {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-9":
		return ISO88599
	}

	return Windows1252
}
