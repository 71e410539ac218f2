package isbn

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Bookland is the EAN prefix implied by every ISBN-10.
const Bookland = "978"

var labelRe = regexp.MustCompile(`^\s*(?i:isbn)(?:-?1[03]\s*:|-1[03])?\s*:?\s*`)

// Digits is a normalized ISBN: 10 or 13 characters, digits only except a
// possible trailing X on ISBN-10.
type Digits string

// Normalize strips an optional "ISBN", "ISBN-10" or "ISBN-13" label and all
// separators (whitespace and dashes), then checks what remains.
func Normalize(s string) (Digits, error) {
	body := labelRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(body))
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteByte('X')
		case unicode.IsSpace(r) || unicode.Is(unicode.Pd, r):
		default:
			return "", &InputError{Input: s, Err: fmt.Errorf("%w: %q", ErrInvalidCharacter, r)}
		}
	}

	d := b.String()
	if len(d) != 10 && len(d) != 13 {
		return "", &InputError{Input: s, Err: fmt.Errorf("%w: got %d", ErrInvalidLength, len(d))}
	}

	if i := strings.IndexByte(d, 'X'); i >= 0 && (len(d) != 10 || i != 9) {
		return "", &InputError{Input: s, Err: fmt.Errorf("%w: X is only valid as an ISBN-10 check digit", ErrInvalidCharacter)}
	}

	return Digits(d), nil
}

// IsISBN10 reports whether the digits came from a 10-digit ISBN.
func (d Digits) IsISBN10() bool {
	return len(d) == 10
}

// SearchForm returns the 13-character form used for group search: ISBN-10
// gets the bookland prefix, its own check character kept as is.
func (d Digits) SearchForm() string {
	if d.IsISBN10() {
		return Bookland + string(d)
	}

	return string(d)
}

// CheckDigit returns the final character.
func (d Digits) CheckDigit() string {
	return string(d[len(d)-1:])
}

// StripHyphens removes separators without validating anything else.
func StripHyphens(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Pd, r) {
			return -1
		}
		return r
	}, s)
}
