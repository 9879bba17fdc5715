package state

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInFlight(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryInFlight(time.Minute)

	ok, err := s.Acquire(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Acquire(ctx, "p1")
	assert.False(t, ok, "second acquire must be refused")

	ok, _ = s.Acquire(ctx, "p2")
	assert.True(t, ok, "markers are per record")

	require.NoError(t, s.Release(ctx, "p1"))
	ok, _ = s.Acquire(ctx, "p1")
	assert.True(t, ok)
}

func TestMemoryInFlightExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryInFlight(time.Second).(*memoryInFlight)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ok, _ := s.Acquire(ctx, "p1")
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = s.Acquire(ctx, "p1")
	assert.True(t, ok, "stale marker must not block forever")
}

func TestMemoryInFlightConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryInFlight(time.Minute)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Acquire(ctx, "same"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
