package builder

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/isbnrange/internal/rangetable"
	"github.com/brogergvhs/isbnrange/internal/ui"
)

// publishedBoundDigits is the bound width used in RangeMessage.xml.
const publishedBoundDigits = rangetable.MaxRegistrantLength

// Metadata describes the parsed message.
type Metadata struct {
	Source       string
	SerialNumber string
	Date         string
	Groups       int
	Ranges       int
	// Skipped counts length-0 rules, which mark unassigned space.
	Skipped int
}

// The document is read through the HTML parser, so element names are matched
// in lower case.
func parseMessage(r io.Reader, log *ui.Logger) ([]rangetable.Group, Metadata, error) {
	var meta Metadata

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, meta, err
	}

	meta.Source = childText(doc.Selection, "messagesource")
	meta.SerialNumber = childText(doc.Selection, "messageserialnumber")
	meta.Date = childText(doc.Selection, "messagedate")

	container := doc.Find("registrationgroups").First()
	if container.Length() == 0 {
		return nil, meta, errors.New("document has no RegistrationGroups element")
	}

	nodes := container.ChildrenFiltered("group")
	if nodes.Length() == 0 {
		return nil, meta, errors.New("RegistrationGroups has no Group elements")
	}

	groups := make([]rangetable.Group, 0, nodes.Length())
	for i := range nodes.Nodes {
		g, skipped, err := parseGroup(nodes.Eq(i), log)
		if err != nil {
			return nil, meta, fmt.Errorf("group %d: %w", i+1, err)
		}
		groups = append(groups, g)
		meta.Ranges += len(g.Ranges)
		meta.Skipped += skipped
	}
	meta.Groups = len(groups)

	return groups, meta, nil
}

func parseGroup(sel *goquery.Selection, log *ui.Logger) (rangetable.Group, int, error) {
	var g rangetable.Group

	g.Prefix = childText(sel, "prefix")
	if g.Prefix == "" {
		return g, 0, errors.New("missing Prefix")
	}
	g.Agency = childText(sel, "agency")
	if g.Agency == "" {
		return g, 0, fmt.Errorf("%s: missing Agency", g.Prefix)
	}

	rules := sel.ChildrenFiltered("rules")
	if rules.Length() == 0 {
		return g, 0, fmt.Errorf("%s: missing Rules", g.Prefix)
	}

	skipped := 0
	items := rules.First().ChildrenFiltered("rule")
	g.Ranges = make([]rangetable.Range, 0, items.Length())
	for i := range items.Nodes {
		rng, err := parseRule(items.Eq(i), g.Prefix, log)
		if err != nil {
			return g, 0, fmt.Errorf("%s rule %d: %w", g.Prefix, i+1, err)
		}
		if rng.Length == 0 {
			skipped++
			continue
		}
		g.Ranges = append(g.Ranges, rng)
	}

	return g, skipped, nil
}

// parseRule reads either <Range>low-high</Range> or <Low>/<High> children.
func parseRule(sel *goquery.Selection, prefix string, log *ui.Logger) (rangetable.Range, error) {
	var rng rangetable.Range

	lengthText := childText(sel, "length")
	if lengthText == "" {
		return rng, errors.New("missing Length")
	}
	n, err := strconv.Atoi(lengthText)
	if err != nil || n < 0 {
		return rng, fmt.Errorf("malformed Length %q", lengthText)
	}
	rng.Length = n

	var low, high string
	if span := childText(sel, "range"); span != "" {
		var ok bool
		low, high, ok = strings.Cut(span, "-")
		if !ok {
			return rng, fmt.Errorf("malformed Range %q", span)
		}
		low, high = strings.TrimSpace(low), strings.TrimSpace(high)
	} else {
		low, high = childText(sel, "low"), childText(sel, "high")
		if low == "" || high == "" {
			return rng, errors.New("missing Range")
		}
	}

	if rng.Low, err = normalizeBound(low); err != nil {
		return rng, err
	}
	if rng.High, err = normalizeBound(high); err != nil {
		return rng, err
	}

	if (len(low) > rangetable.BoundDigits && rng.Low+"0" != low) ||
		(len(high) > rangetable.BoundDigits && rng.High+"9" != high) {
		log.Warn("registrant range cut to artifact precision",
			ui.FieldPrefix, prefix,
			"published", low+"-"+high,
			"stored", rng.Low+"-"+rng.High,
		)
	}

	return rng, nil
}

// normalizeBound accepts the published 7-digit or the artifact 6-digit form.
func normalizeBound(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !rangetable.IsDigits(s) {
		return "", fmt.Errorf("malformed bound %q", s)
	}

	switch len(s) {
	case rangetable.BoundDigits:
		return s, nil
	case publishedBoundDigits:
		return s[:rangetable.BoundDigits], nil
	default:
		return "", fmt.Errorf("bound %q must have %d or %d digits", s, rangetable.BoundDigits, publishedBoundDigits)
	}
}

func childText(sel *goquery.Selection, name string) string {
	return strings.TrimSpace(sel.Find(name).First().Text())
}
