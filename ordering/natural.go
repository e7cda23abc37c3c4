package ordering

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// naturalChunk is one run of a file name: either all decimal digits or no digits at all.
// Digit runs are stored as ASCII digits.
type naturalChunk struct {
	text    string
	numeric bool
}

// naturalKey splits s into alternating text and digit runs. Like a split on
// (\d+), the key always starts and ends with a text run, which may be empty,
// so two keys always line up text-against-text and digits-against-digits.
// Text runs are case folded. Any Unicode decimal digit (e.g. full-width
// "１０") counts as a digit.
func naturalKey(s string, folder cases.Caser) []naturalChunk {
	var chunks []naturalChunk
	start := 0
	inDigits := false
	for i, r := range s {
		isDigit := unicode.IsDigit(r)
		if isDigit != inDigits {
			chunks = append(chunks, newChunk(s[start:i], inDigits, folder))
			start = i
			inDigits = isDigit
		}
	}
	chunks = append(chunks, newChunk(s[start:], inDigits, folder))
	if inDigits {
		chunks = append(chunks, naturalChunk{})
	}
	return chunks
}

func newChunk(run string, numeric bool, folder cases.Caser) naturalChunk {
	if numeric {
		return naturalChunk{text: asciiDigits(run), numeric: true}
	}
	return naturalChunk{text: folder.String(run)}
}

// asciiDigits rewrites a run of decimal digits from any script as ASCII
func asciiDigits(run string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return '0' + rune(digitValue(r))
	}, run)
}

// digitValue returns the value of a Unicode decimal digit. Decimal digits
// are encoded in contiguous blocks of ten starting at zero, so the value is
// the offset from the start of the block.
func digitValue(r rune) int {
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int((r-lo)/rune(rg.Stride)) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int((r-lo)/rune(rg.Stride)) % 10
		}
	}
	return 0
}

// compareNumeric compares two digit runs by integer value, without overflow
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// compareKeys compares two natural keys element-wise; a key that is a prefix of the other sorts first
func compareKeys(a, b []naturalChunk) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		var c int
		if a[i].numeric && b[i].numeric {
			c = compareNumeric(a[i].text, b[i].text)
		} else {
			c = strings.Compare(a[i].text, b[i].text)
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// NaturalLess reports whether a sorts before b in natural order, so that
// "img2.jpg" comes before "img10.jpg" and case is ignored.
func NaturalLess(a, b string) bool {
	folder := cases.Fold()
	return compareKeys(naturalKey(a, folder), naturalKey(b, folder)) < 0
}
