package rangetable

import "errors"

// ErrInvalidTable is returned when groups or an artifact do not form a
// valid table.
var ErrInvalidTable = errors.New("invalid range table")
