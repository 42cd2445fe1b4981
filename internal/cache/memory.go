package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memEntry struct {
	val     []byte
	expires time.Time
	tags    []string
}

// DefaultMaxEntries caps a Memory store created by NewMemory.
const DefaultMaxEntries = 10000

// Memory is an in-process Store. Suitable for a single instance. Keys
// include client-chosen parts (page numbers, handles), so expired entries
// are swept by Run and the entry count is capped.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memEntry
	byTag      map[string]map[string]struct{}
	maxEntries int
	now        func() time.Time
}

func NewMemory() *Memory {
	return NewMemoryWithLimit(DefaultMaxEntries)
}

// NewMemoryWithLimit returns a store holding at most maxEntries entries;
// zero or less means no cap.
func NewMemoryWithLimit(maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]memEntry),
		byTag:      make(map[string]map[string]struct{}),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.deleteLocked(key)
		return nil, ErrMiss
	}
	return e.val, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteLocked(key)
	if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.sweepLocked()
		if over := len(m.entries) - m.maxEntries + 1; over > 0 {
			// evict a tenth at once so a full store does not sort on every Set
			m.evictLocked(max(over, m.maxEntries/10))
		}
	}
	e := memEntry{val: val, tags: tags}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	for _, t := range tags {
		keys, ok := m.byTag[t]
		if !ok {
			keys = make(map[string]struct{})
			m.byTag[t] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (m *Memory) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tags {
		for key := range m.byTag[t] {
			m.deleteLocked(key)
		}
		delete(m.byTag, t)
	}
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

// Run calls Sweep every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Memory) sweepLocked() int {
	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			m.deleteLocked(key)
			removed++
		}
	}
	return removed
}

// evictLocked drops n entries, those expiring soonest first.
func (m *Memory) evictLocked(n int) {
	if n <= 0 {
		return
	}
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return expiresBefore(m.entries[keys[i]].expires, m.entries[keys[j]].expires)
	})
	for _, k := range keys[:min(n, len(keys))] {
		m.deleteLocked(k)
	}
}

// expiresBefore orders zero (never expiring) times last.
func expiresBefore(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	}
	return a.Before(b)
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) deleteLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, t := range e.tags {
		if keys, ok := m.byTag[t]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(m.byTag, t)
			}
		}
	}
}
