package rangetable

import (
	"fmt"
	"strings"
)

// BoundDigits is the width of a registrant range bound in the artifact.
const BoundDigits = 6

// MaxRegistrantLength is the longest registrant code any published rule uses.
const MaxRegistrantLength = 7

// Range is one registrant rule of a group: registrant codes whose leading
// digits fall between Low and High (inclusive) are Length digits long.
type Range struct {
	Length int    `json:"length"`
	Low    string `json:"low"`
	High   string `json:"high"`
}

// Contains reports whether the registrant value lies inside the range.
// The value is read as a decimal fraction, so it is cut or right-padded to
// BoundDigits before comparing.
func (r Range) Contains(value string) bool {
	v := Fraction(value, BoundDigits)
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s/%d", r.Low, r.High, r.Length)
}

func (r Range) validate() error {
	if r.Length < 1 || r.Length > MaxRegistrantLength {
		return fmt.Errorf("range %s: length %d out of bounds", r, r.Length)
	}
	if !isBound(r.Low) || !isBound(r.High) {
		return fmt.Errorf("range %s: bounds must be %d digits", r, BoundDigits)
	}
	if r.Low > r.High {
		return fmt.Errorf("range %s: low bound above high bound", r)
	}

	return nil
}

func isBound(s string) bool {
	return len(s) == BoundDigits && IsDigits(s)
}

// Fraction returns digits read as a decimal fraction at the given width:
// longer input is cut, shorter input is right-padded with zeros. Two values
// produced at the same width compare correctly as strings.
func Fraction(digits string, width int) string {
	if len(digits) >= width {
		return digits[:width]
	}

	return digits + strings.Repeat("0", width-len(digits))
}

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
