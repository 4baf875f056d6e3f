package order

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberGeneratorMonotonic(t *testing.T) {
	g := NewNumberGenerator()

	prev := int64(0)
	for i := 0; i < 100; i++ {
		n, err := strconv.ParseInt(g.Next(), 10, 64)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestNumberGeneratorUniqueUnderConcurrency(t *testing.T) {
	g := NewNumberGenerator()

	const goroutines = 8
	const perGoroutine = 200

	var mu sync.Mutex
	seen := make(map[string]bool, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perGoroutine)
			for j := 0; j < perGoroutine; j++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range local {
				seen[n] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine, "every generated number must be unique")
}
