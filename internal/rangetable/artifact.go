package rangetable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// artifactGroup is the on-disk entry for one prefix.
type artifactGroup struct {
	Name   string  `json:"name"`
	Ranges []Range `json:"ranges"`
}

// Marshal encodes the table as the build artifact: an object keyed by group
// prefix, each entry holding the agency name and its ordered ranges.
func Marshal(t *Table) ([]byte, error) {
	out := make(map[string]artifactGroup, len(t.groups))
	for _, g := range t.groups {
		ranges := g.Ranges
		if ranges == nil {
			ranges = []Range{}
		}
		out[g.Prefix] = artifactGroup{Name: g.Agency, Ranges: ranges}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal range table: %w", err)
	}

	return append(data, '\n'), nil
}

// Load decodes and validates an artifact. Unknown fields, trailing data and
// any invalid entry reject the whole artifact.
func Load(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var raw map[string]artifactGroup
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidTable, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after table", ErrInvalidTable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrInvalidTable)
	}

	groups := make([]Group, 0, len(raw))
	for prefix, g := range raw {
		groups = append(groups, Group{
			Prefix: prefix,
			Agency: g.Name,
			Ranges: g.Ranges,
		})
	}

	return New(groups)
}

// LoadBytes is Load over an in-memory artifact.
func LoadBytes(data []byte) (*Table, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads and validates the artifact at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open range table: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}
