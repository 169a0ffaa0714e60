package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process fallback Store. Each namespace gets its
// own bounded LRU; the LRU's built-in expiry caps entry lifetime at
// maxTTL while the per-call TTL is enforced on read, since callers
// choose a different TTL per data kind.
type MemoryStore struct {
	mu         sync.Mutex
	namespaces map[string]*expirable.LRU[string, memEntry]
	maxEntries int
	maxTTL     time.Duration
	now        func() time.Time
}

func NewMemoryStore(maxEntries int, maxTTL time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryStore{
		namespaces: make(map[string]*expirable.LRU[string, memEntry]),
		maxEntries: maxEntries,
		maxTTL:     maxTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) lru(namespace string, create bool) *expirable.LRU[string, memEntry] {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.namespaces[namespace]
	if !ok && create {
		l = expirable.NewLRU[string, memEntry](s.maxEntries, nil, s.maxTTL)
		s.namespaces[namespace] = l
	}
	return l
}

func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	l := s.lru(namespace, false)
	if l == nil {
		return nil, false, nil
	}
	entry, ok := l.Get(key)
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		l.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Put(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.lru(namespace, true).Add(key, memEntry{
		value:     stored,
		expiresAt: s.now().Add(ttl),
	})
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, namespace, key string) error {
	if l := s.lru(namespace, false); l != nil {
		l.Remove(key)
	}
	return nil
}

func (s *MemoryStore) InvalidateNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	l, ok := s.namespaces[namespace]
	if ok {
		delete(s.namespaces, namespace)
	}
	s.mu.Unlock()
	if ok {
		l.Purge()
	}
	return nil
}
