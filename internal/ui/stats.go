package ui

import "sync/atomic"

// Stats counts batch hyphenation outcomes.
type Stats struct {
	Hyphenated atomic.Int64
	Fallback   atomic.Int64
	NotFound   atomic.Int64
	Invalid    atomic.Int64
}

func (s *Stats) Total() int64 {
	return s.Hyphenated.Load() + s.Fallback.Load() + s.NotFound.Load() + s.Invalid.Load()
}
