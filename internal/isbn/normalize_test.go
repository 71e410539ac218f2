package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   Digits
		isbn10 bool
	}{
		{"9780306406157", "9780306406157", false},
		{" 978-0-306-40615-7 ", "9780306406157", false},
		{"978\t0 306 40615 7", "9780306406157", false},
		{"ISBN: 978-0-306-40615-7", "9780306406157", false},
		{"isbn13: 9780306406157", "9780306406157", false},
		{"ISBN-13 978-0-306-40615-7", "9780306406157", false},
		{"0-306-40615-2", "0306406152", true},
		{"ISBN-10: 080442957x", "080442957X", true},
		{"ISBN 1-59327-584-6", "1593275846", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.isbn10, got.IsISBN10())
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"12345", ErrInvalidLength},
		{"978-0-306", ErrInvalidLength},
		{"ISBN", ErrInvalidLength},
		{"97803064O6157", ErrInvalidCharacter},
		{"978.0.306.40615.7", ErrInvalidCharacter},
		{"X306406152", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Normalize(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.in, ie.Input)
		})
	}
}

func TestDigitsForms(t *testing.T) {
	d := Digits("080442957X")

	assert.Equal(t, "978080442957X", d.SearchForm())
	assert.Equal(t, "X", d.CheckDigit())

	d = Digits("9790123456785")
	assert.Equal(t, "9790123456785", d.SearchForm())
	assert.Equal(t, "5", d.CheckDigit())
}

func TestStripHyphens(t *testing.T) {
	assert.Equal(t, "9780306406157", StripHyphens("978-0-306-40615-7"))
	assert.Equal(t, "080442957X", StripHyphens("0 8044 2957 X"))
}
