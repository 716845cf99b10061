package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is a bounded in-process JSON cache. Values are stored encoded so
// callers never share mutable state through it.
type Memory struct {
	mu   sync.Mutex
	lru  *lru.Cache
	keys map[string]struct{}
	ttl  time.Duration
	now  func() time.Time
}

func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	m := &Memory{
		lru:  lru.New(maxEntries),
		keys: make(map[string]struct{}),
		ttl:  ttl,
		now:  time.Now,
	}
	m.lru.OnEvicted = func(key lru.Key, _ interface{}) {
		if k, ok := key.(string); ok {
			delete(m.keys, k)
		}
	}
	return m
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	v, ok := m.lru.Get(key)
	if !ok {
		m.mu.Unlock()
		return false, nil
	}
	e := v.(memoryEntry)
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.lru.Remove(key)
		m.mu.Unlock()
		return false, nil
	}
	m.mu.Unlock()

	if err := json.Unmarshal(e.value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = m.ttl
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Add(key, memoryEntry{value: b, expires: m.now().Add(ttl)})
	m.keys[key] = struct{}{}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Remove(key)
	return nil
}

// DeleteByPattern removes keys matching a glob such as "dashboard:*".
func (m *Memory) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.keys {
		if ok, _ := path.Match(pattern, k); ok {
			m.lru.Remove(k)
		}
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
