package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process preference store, nothing survives a restart.
type Memory struct {
	mu    sync.RWMutex
	prefs map[string]Pref
}

// NewMemory makes an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{prefs: make(map[string]Pref)}
}

// Get retrieves the value for the given key.
// Returns ErrNotFound if the key does not exist.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prefs[key]
	if !ok {
		return "", ErrNotFound
	}
	return p.Value, nil
}

// Set stores the value for the given key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = Pref{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}

// Delete removes the key from the store.
// Returns ErrNotFound if the key does not exist.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prefs[key]; !ok {
		return ErrNotFound
	}
	delete(m.prefs, key)
	return nil
}

// List returns all stored preferences, ordered by key.
func (m *Memory) List(_ context.Context) ([]Pref, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]Pref, 0, len(m.prefs))
	for _, p := range m.prefs {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
