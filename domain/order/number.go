package order

import (
	"strconv"
	"sync"
	"time"
)

// NumberGenerator produces globally unique, human-readable order numbers
// derived from the wall clock in milliseconds. Two submissions landing in
// the same millisecond are disambiguated by bumping past the last value,
// so the sequence is strictly monotonic within a process.
type NumberGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewNumberGenerator creates a NumberGenerator.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{}
}

// Next returns the next order number.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
