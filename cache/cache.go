// Package cache memoizes the normalized post collection per fetch
// options, with time-based invalidation.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"blogkit/models"
)

// TTL is the validity window of a cached collection snapshot. An entry
// older than this is indistinguishable from an absent one and must be
// recomputed, never extended.
const TTL = 5 * time.Minute

type entry struct {
	posts     []models.Post
	timestamp time.Time
}

// Store maps canonicalized fetch-option keys to cached post
// collections. The key space is small and finite (languages times two
// booleans), so there is no eviction beyond TTL expiry.
//
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

func New() *Store {
	return &Store{
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// NewWithClock constructs a store with an injected clock, for tests that
// need to move time past the TTL.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		entries: map[string]entry{},
		now:     now,
	}
}

// Get returns the cached posts for key if the entry is still within the
// TTL window.
func (s *Store) Get(key string) ([]models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.timestamp) >= TTL {
		return nil, false
	}
	return e.posts, true
}

// Set replaces the entry for key with posts and the current timestamp.
// The write is a whole-entry replace; there are no partial updates.
func (s *Store) Set(key string, posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{posts: posts, timestamp: s.now()}
}

// Clear drops all entries unconditionally. Intended for development and
// tests.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]entry{}
}

// Do coalesces concurrent misses for the same key into a single
// in-flight computation: the first caller runs compute, and concurrent
// callers for the same key share its result instead of racing to
// recompute and cache divergent collections.
func (s *Store) Do(key string, compute func() ([]models.Post, error)) ([]models.Post, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		if posts, ok := s.Get(key); ok {
			return posts, nil
		}
		posts, err := compute()
		if err != nil {
			return nil, err
		}
		s.Set(key, posts)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Post), nil
}
