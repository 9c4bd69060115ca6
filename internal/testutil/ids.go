package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined run IDs for tests.
//
// Once the listed IDs are exhausted it falls back to "run-<n>" so tests that
// only care about uniqueness need not enumerate every ID.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next run ID.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("run-%d", g.idx)
}
