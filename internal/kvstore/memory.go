package kvstore

import (
	"context"
	"sync"
)

// Memory implements Store in process memory. It is used in tests and mirrors
// the SQLite implementation's quota and eviction behavior.
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	quota    int64
	evictKey string
}

// NewMemory creates an in-memory store. quota <= 0 means unbounded.
func NewMemory(quota int64, evictKey string) *Memory {
	return &Memory{
		values:   make(map[string]string),
		quota:    quota,
		evictKey: evictKey,
	}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key, evicting the configured key and retrying once
// when the write would exceed the quota.
func (m *Memory) Set(_ context.Context, key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fits(key, int64(len(value))) {
		m.values[key] = value
		return true
	}

	if m.evictKey == "" || m.evictKey == key {
		return false
	}
	delete(m.values, m.evictKey)

	if m.fits(key, int64(len(value))) {
		m.values[key] = value
		return true
	}
	return false
}

func (m *Memory) fits(key string, n int64) bool {
	if m.quota <= 0 {
		return true
	}
	var used int64
	for k, v := range m.values {
		if k == key {
			continue
		}
		used += int64(len(v))
	}
	return used+n <= m.quota
}
