// Package isbn resolves ISBN-10 and ISBN-13 values against the range table:
// it finds the registration group owning an ISBN and places the registrant
// boundary inside that group to produce the standard hyphenation.
//
// Hyphenation is formatting, not validation. Malformed input (wrong length,
// stray characters) fails fast with an *InputError, an ISBN outside every
// published group reports ErrGroupNotFound, and an ISBN whose registrant
// falls in an unpublished gap is still hyphenated with the registrant and
// publication codes left as one block. Check digits are never verified.
package isbn
