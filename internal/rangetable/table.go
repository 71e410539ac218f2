package rangetable

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

var prefixRe = regexp.MustCompile(`^97[89]-[0-9]{1,5}$`)

// Group is a registration group: a national, geographic or language area
// owning one published prefix.
type Group struct {
	// Prefix is written as published, EAN then group digits: "978-0".
	Prefix string
	Agency string
	Ranges []Range
}

// Digits returns the prefix without separators ("9780").
func (g Group) Digits() string {
	return strings.ReplaceAll(g.Prefix, "-", "")
}

// EAN returns the bookland prefix, 978 or 979.
func (g Group) EAN() string {
	return g.Prefix[:3]
}

// Identifier returns the group digits that follow the EAN prefix.
func (g Group) Identifier() string {
	return g.Prefix[4:]
}

// RangeFor returns the first rule whose bounds contain value.
func (g Group) RangeFor(value string) (Range, bool) {
	for _, r := range g.Ranges {
		if r.Contains(value) {
			return r, true
		}
	}

	return Range{}, false
}

func (g Group) clone() Group {
	g.Ranges = slices.Clone(g.Ranges)
	return g
}

func (g Group) validate() error {
	if !prefixRe.MatchString(g.Prefix) {
		return fmt.Errorf("group %q: malformed prefix", g.Prefix)
	}
	if strings.TrimSpace(g.Agency) == "" {
		return fmt.Errorf("group %s: empty agency name", g.Prefix)
	}

	for i, r := range g.Ranges {
		if err := r.validate(); err != nil {
			return fmt.Errorf("group %s: %w", g.Prefix, err)
		}
		if i > 0 && r.Low <= g.Ranges[i-1].High {
			return fmt.Errorf("group %s: range %s overlaps or precedes %s", g.Prefix, r, g.Ranges[i-1])
		}
	}

	return nil
}

// Table is the immutable, sorted set of registration groups. It is safe for
// concurrent use.
type Table struct {
	groups []Group
	digits []string
	index  map[string]int
}

// New validates groups and returns them as a sorted table. Groups are copied,
// so later changes to the argument do not reach the table.
func New(groups []Group) (*Table, error) {
	t := &Table{
		groups: make([]Group, 0, len(groups)),
		index:  make(map[string]int, len(groups)),
	}

	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		if _, dup := seen[g.Prefix]; dup {
			return nil, fmt.Errorf("%w: duplicate prefix %s", ErrInvalidTable, g.Prefix)
		}
		seen[g.Prefix] = struct{}{}
		t.groups = append(t.groups, g.clone())
	}

	slices.SortStableFunc(t.groups, func(a, b Group) int {
		return compareFraction(a.Digits(), b.Digits())
	})

	t.digits = make([]string, len(t.groups))
	for i, g := range t.groups {
		t.digits[i] = g.Digits()
		t.index[t.digits[i]] = i
	}

	return t, nil
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// Groups returns a copy of the groups in table order.
func (t *Table) Groups() []Group {
	out := make([]Group, len(t.groups))
	for i, g := range t.groups {
		out[i] = g.clone()
	}

	return out
}

// Group returns the group published under prefix ("978-0").
func (t *Table) Group(prefix string) (Group, bool) {
	i, ok := t.index[strings.ReplaceAll(prefix, "-", "")]
	if !ok {
		return Group{}, false
	}

	return t.groups[i].clone(), true
}

// Lookup finds the most specific group whose digit prefix starts digits,
// which must be a 13-digit search form (EAN included).
//
// Prefixes are ordered as decimal fractions, so the greatest entry not above
// digits is the only candidate that can extend every other match. It still
// has to be checked as a literal prefix: numerically close prefixes of
// different lengths sort next to each other without sharing digits.
func (t *Table) Lookup(digits string) (Group, bool) {
	i := sort.Search(len(t.digits), func(i int) bool {
		return compareFraction(t.digits[i], digits) > 0
	})
	if i == 0 {
		return Group{}, false
	}

	candidate := t.digits[i-1]
	if strings.HasPrefix(digits, candidate) {
		return t.groups[i-1].clone(), true
	}

	// A shorter match sorts before the candidate and is a prefix of it.
	for n := commonPrefixLen(candidate, digits); n > 0; n-- {
		if j, ok := t.index[digits[:n]]; ok {
			return t.groups[j].clone(), true
		}
	}

	return Group{}, false
}

// compareFraction orders digit strings as decimal fractions ("0" < "345" <
// "5"), shorter first when the values are equal ("9786" < "97860").
func compareFraction(a, b string) int {
	w := max(len(a), len(b))
	if c := strings.Compare(Fraction(a, w), Fraction(b, w)); c != 0 {
		return c
	}

	return cmp.Compare(len(a), len(b))
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}
