package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// InFlight tracks records with a status update in progress so a second
// toggle on the same record is refused until the first one finishes.
type InFlight interface {
	Acquire(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}

type redisInFlight struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

// NewRedisInFlight shares markers across every process using the same Redis.
// Markers expire after ttl in case a holder dies before releasing.
func NewRedisInFlight(redisClient *redis.Client, ttl time.Duration) InFlight {
	return &redisInFlight{
		redisClient: redisClient,
		keyPrefix:   "storefront:inflight:product:",
		ttl:         ttl,
	}
}

func (s *redisInFlight) Acquire(ctx context.Context, id string) (bool, error) {
	ok, err := s.redisClient.SetNX(ctx, s.keyPrefix+id, time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark product %s in flight: %w", id, err)
	}
	return ok, nil
}

func (s *redisInFlight) Release(ctx context.Context, id string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to clear in-flight marker for product %s: %w", id, err)
	}
	return nil
}

type memoryInFlight struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	markers map[string]time.Time
}

// NewMemoryInFlight keeps markers in process memory, for single-instance
// deployments without Redis.
func NewMemoryInFlight(ttl time.Duration) InFlight {
	return &memoryInFlight{
		ttl:     ttl,
		now:     time.Now,
		markers: make(map[string]time.Time),
	}
}

func (s *memoryInFlight) Acquire(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expires, ok := s.markers[id]; ok && now.Before(expires) {
		return false, nil
	}
	s.markers[id] = now.Add(s.ttl)
	return true, nil
}

func (s *memoryInFlight) Release(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.markers, id)
	return nil
}
