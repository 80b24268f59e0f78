// Package cache is the client's only shared mutable state: a read cache of
// server collections keyed by (resource, owner). It is never the source of
// truth; every entry is reconcilable by refetching.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sandeepkv93/lifequest/internal/api"
)

type Resource string

const (
	ResourceTasks   Resource = "tasks"
	ResourceSkills  Resource = "skills"
	ResourceRewards Resource = "rewards"
	ResourceAvatars Resource = "avatars"
	ResourceProfile Resource = "profile"
)

// Key scopes an entry to one resource of one owner so a user switch can
// never serve another owner's data.
type Key struct {
	Resource Resource
	Owner    int64
}

type entry struct {
	value     any
	fetchedAt time.Time
}

const DefaultStaleAfter = 5 * time.Minute

// Store serves cached collections within a freshness window and refetches
// after invalidation or expiry.
type Store struct {
	mu         sync.Mutex
	staleAfter time.Duration
	now        func() time.Time
	entries    map[Key]entry
}

func NewStore(staleAfter time.Duration) *Store {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Store{
		staleAfter: staleAfter,
		now:        time.Now,
		entries:    make(map[Key]entry),
	}
}

// SetClock overrides the store's clock. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) lookup(key Key) (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *Store) put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, fetchedAt: s.now()}
}

func (s *Store) fresh(e entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Sub(e.fetchedAt) < s.staleAfter
}

// Invalidate marks entries stale so the next read refetches. The value
// stays behind so a failed refetch can still serve it. Safe to call for
// keys that were never populated.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.fetchedAt = time.Time{}
			s.entries[key] = e
		}
	}
}

// InvalidateOwner drops every entry belonging to one owner. Used on
// sign-out.
func (s *Store) InvalidateOwner(owner int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if key.Owner == owner {
			delete(s.entries, key)
		}
	}
}

// Reset drops everything.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]entry)
}

// Get serves the cached value for key while it is fresh, otherwise runs
// fetch. On a fetch failure the previous value, when one exists, keeps
// being served (stale-but-available). Authentication failures always
// propagate so the session layer can tear down.
func Get[T any](ctx context.Context, s *Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	prev, ok := s.lookup(key)
	if ok && s.fresh(prev) {
		return prev.value.(T), nil
	}

	value, err := fetch(ctx)
	if err != nil {
		if !api.IsUnauthorized(err) && ok {
			return prev.value.(T), nil
		}
		var zero T
		return zero, err
	}
	s.put(key, value)
	return value, nil
}
