package isbn

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by normalization and resolution.
var (
	// ErrInvalidLength is returned when the digits are neither 10 nor 13 long.
	ErrInvalidLength = errors.New("isbn must have 10 or 13 digits")

	// ErrInvalidCharacter is returned for anything but digits, separators and
	// a trailing ISBN-10 X.
	ErrInvalidCharacter = errors.New("isbn contains an invalid character")

	// ErrGroupNotFound is returned when no published group prefix covers
	// the digits.
	ErrGroupNotFound = errors.New("no registration group identified")
)

// InputError reports a malformed ISBN. It wraps ErrInvalidLength or
// ErrInvalidCharacter.
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%q: %v", e.Input, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is a caller input-validation failure.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
