package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis failure other than a key miss.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrNotFound is returned by Get when no entry exists for the identifier.
// It wraps redis.Nil so callers holding either sentinel can match it.
var ErrNotFound = fmt.Errorf("session not found: %w", redis.Nil)

// Store is the Redis key-value backend for session records.
//
// Store holds no mutable state of its own; concurrency safety is that of the
// underlying redis client.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a [Store] backed by the given Redis client. When prefix is
// non-empty, keys are stored as "prefix:id"; otherwise the identifier itself is
// the key.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(sessionID string) string {
	if s.prefix == "" {
		return sessionID
	}
	return s.prefix + ":" + sessionID
}

// Get returns the raw stored value for sessionID.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return data, nil
}

// Set stores value under sessionID. A ttl of zero or less stores the entry
// without expiration.
//
//	Performance: 1 Redis SET.
func (s *Store) Set(ctx context.Context, sessionID string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.redis.Set(ctx, s.key(sessionID), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Del removes the entry for sessionID. Deleting a missing entry is not an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Del(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// EstimateSessions scans keys under the configured prefix and counts them.
// This is an admin-only O(n) operation and must not be used in request hot paths.
// It requires a non-empty prefix, since unprefixed keys cannot be told apart
// from unrelated data.
func (s *Store) EstimateSessions(ctx context.Context) (int, error) {
	if s.prefix == "" {
		return 0, errors.New("estimate sessions requires a key prefix")
	}
	pattern := s.prefix + ":*"
	var (
		cursor uint64
		total  int
	)

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return total, nil
}
