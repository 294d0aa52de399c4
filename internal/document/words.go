package document

import "strings"

var (
	unitWords = [...]string{"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan"}
	teenWords = [...]string{
		"sepuluh", "sebelas", "dua belas", "tiga belas", "empat belas",
		"lima belas", "enam belas", "tujuh belas", "delapan belas", "sembilan belas",
	}
	scaleWords = [...]string{"", "ribu", "juta", "miliar", "triliun", "kuadriliun", "kuintiliun"}
)

// Words spells a rupiah amount in Indonesian, e.g. 1_500_000 becomes
// "satu juta lima ratus ribu rupiah". Zero is "nol", without the currency.
func Words(amount int64) string {
	if amount == 0 {
		return "nol"
	}

	prefix := ""
	n := uint64(amount)

	if amount < 0 {
		prefix = "minus "
		n = uint64(-amount)
	}

	var chunks []string

	for scale := 0; n > 0; scale++ {
		chunk := int(n % 1000)
		n /= 1000

		if chunk == 0 {
			continue
		}

		var w string

		switch {
		case scale == 1 && chunk == 1:
			w = "seribu"
		case scale == 0:
			w = chunkWords(chunk)
		default:
			w = chunkWords(chunk) + " " + scaleWords[scale]
		}

		chunks = append(chunks, w)
	}

	// Chunks were collected low to high.
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}

	return prefix + strings.Join(chunks, " ") + " rupiah"
}

// chunkWords spells 1..999.
func chunkWords(n int) string {
	var words []string

	switch h := n / 100; {
	case h == 1:
		words = append(words, "ratus")
	case h > 1:
		words = append(words, unitWords[h]+" ratus")
	}

	switch r := n % 100; {
	case r >= 20:
		words = append(words, unitWords[r/10]+" puluh")
		if r%10 > 0 {
			words = append(words, unitWords[r%10])
		}
	case r >= 10:
		words = append(words, teenWords[r-10])
	case r > 0:
		words = append(words, unitWords[r])
	}

	return strings.Join(words, " ")
}
