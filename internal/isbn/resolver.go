package isbn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/isbnrange/internal/rangetable"
)

// Location is where an ISBN sits in the range table.
type Location struct {
	Group rangetable.Group
	// PrefixLen counts EAN plus group digits in the 13-digit search form.
	PrefixLen int
	ISBN10    bool
	Digits    Digits
}

// remainder returns registrant plus publication digits, without the check
// digit.
func (l Location) remainder() string {
	s := l.Digits.SearchForm()
	return s[l.PrefixLen : len(s)-1]
}

// Split returns the registrant and publication codes. When no registrant
// rule covers the remainder (an unpublished gap, or a rule that would leave
// no publication digits) ok is false and registrant holds the whole
// remainder as a single block.
func (l Location) Split() (registrant, publication string, ok bool) {
	rest := l.remainder()

	rule, found := l.Group.RangeFor(rest)
	if !found || rule.Length >= len(rest) {
		return rest, "", false
	}

	return rest[:rule.Length], rest[rule.Length:], true
}

// Segments returns the hyphenation parts in order. ISBN-10 input never
// carries the EAN segment.
func (l Location) Segments() []string {
	parts := make([]string, 0, 5)
	if !l.ISBN10 {
		parts = append(parts, l.Group.EAN())
	}
	parts = append(parts, l.Group.Identifier())

	registrant, publication, ok := l.Split()
	parts = append(parts, registrant)
	if ok {
		parts = append(parts, publication)
	}

	return append(parts, l.Digits.CheckDigit())
}

// Hyphenated joins Segments with hyphens.
func (l Location) Hyphenated() string {
	return strings.Join(l.Segments(), "-")
}

// Resolver answers group and hyphenation queries over one immutable table.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	table *rangetable.Table
}

func NewResolver(table *rangetable.Table) *Resolver {
	return &Resolver{table: table}
}

func (r *Resolver) Table() *rangetable.Table {
	return r.table
}

// Resolve normalizes isbn and finds its registration group. On
// ErrGroupNotFound the returned Location still carries the digits.
func (r *Resolver) Resolve(isbn string) (Location, error) {
	d, err := Normalize(isbn)
	if err != nil {
		return Location{}, err
	}

	loc := Location{Digits: d, ISBN10: d.IsISBN10()}

	g, ok := r.table.Lookup(d.SearchForm())
	if !ok {
		return loc, fmt.Errorf("%s: %w", d, ErrGroupNotFound)
	}

	loc.Group = g
	loc.PrefixLen = len(g.Digits())
	return loc, nil
}

// Hyphenate returns isbn re-hyphenated per the range table. Malformed input
// fails with an *InputError. When no group matches, the stripped digits are
// returned together with ErrGroupNotFound.
func (r *Resolver) Hyphenate(isbn string) (string, error) {
	loc, err := r.Resolve(isbn)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return string(loc.Digits), err
		}
		return "", err
	}

	return loc.Hyphenated(), nil
}

// GroupName returns the agency name of the group owning isbn.
func (r *Resolver) GroupName(isbn string) (string, bool) {
	loc, err := r.Resolve(isbn)
	if err != nil {
		return "", false
	}

	return loc.Group.Agency, true
}
