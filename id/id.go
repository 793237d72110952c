// Package id provides the identity services used across tsngen. Cycle
// instance numbers come from a caller-owned Source rather than a
// process-global counter, so tests and concurrent schedule runs stay
// isolated from each other.
package id

import (
	"sync/atomic"

	"github.com/rs/xid"
)

// Source issues monotonically increasing instance numbers starting at 1.
// A Source is owned by the schedule run that created it; all cycles that
// share one solving session must draw from the same Source so that their
// symbolic names stay globally unique.
type Source struct {
	next uint64
}

// NewSource creates a Source whose first number is 1.
func NewSource() *Source {
	return &Source{}
}

// Next returns the next instance number.
func (s *Source) Next() int {
	return int(atomic.AddUint64(&s.next, 1))
}

// UniqueName returns a globally unique name, suitable for naming
// recording files when the caller does not provide one.
func UniqueName() string {
	return xid.New().String()
}
