package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key namespaces. Per-collection keys are CollectionKey(slug).
const (
	LeaderboardKey      = "leaderboard"
	collectionKeyPrefix = "collection-"
)

// CollectionKey returns the cache key for one collection's series.
// The slug must already be normalized.
func CollectionKey(slug string) string {
	return collectionKeyPrefix + slug
}

// Entry is the stored envelope. Timestamp is the fetch time in epoch
// milliseconds, recorded at write, never at read.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// IsValid reports whether the entry is still fresh at now: strictly
// less than ttl has elapsed since the entry was written. An entry
// written at t0 with TTL d is stale from exactly t0+d onward.
func IsValid(e Entry, ttl time.Duration, now time.Time) bool {
	return now.UnixMilli()-e.Timestamp < ttl.Milliseconds()
}

// Store persists {data, timestamp} envelopes by key. Read never
// surfaces storage errors: a missing, unreadable, or malformed entry
// is simply absent. Write overwrites unconditionally.
type Store interface {
	Read(ctx context.Context, key string) (Entry, bool)
	Write(ctx context.Context, key string, data any, timestamp int64) error
}

// RedisCmdable is the slice of the redis client the store uses.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps envelopes in redis. Entries are written without
// expiry: staleness is decided at read time by IsValid, and a stale
// entry must survive to act as the fallback snapshot when a refresh
// fails.
type RedisStore struct {
	client RedisCmdable
}

func NewRedisStore(client RedisCmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Read(ctx context.Context, key string) (Entry, bool) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache read failed for %s: %v", key, err)
		}
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.Printf("cache entry for %s is corrupt, treating as miss: %v", key, err)
		return Entry{}, false
	}
	if e.Data == nil {
		return Entry{}, false
	}
	return e, true
}

func (s *RedisStore) Write(ctx context.Context, key string, data any, timestamp int64) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(Entry{Data: payload, Timestamp: timestamp})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, envelope, 0).Err()
}

// MemoryStore is an in-process Store for tests and redis-less runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Read(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *MemoryStore) Write(_ context.Context, key string, data any, timestamp int64) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Data: payload, Timestamp: timestamp}
	return nil
}
