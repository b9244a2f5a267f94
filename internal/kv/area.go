package kv

import (
	"maps"
	"sync"
)

// Area is a text-only key/value storage area.
//
// GetItem reports ok=false with a nil error when the key is absent.
type Area interface {
	GetItem(key string) (text string, ok bool, err error)
	SetItem(key, text string) error
	RemoveItem(key string) error
}

// Clearer is implemented by areas that can drop all of their items at once.
type Clearer interface {
	Clear() error
}

// MemArea is an in-memory Area. Its contents live as long as the process.
type MemArea struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemArea() *MemArea {
	return &MemArea{items: map[string]string{}}
}

func (m *MemArea) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.items[key]
	return text, ok, nil
}

func (m *MemArea) SetItem(key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = text
	return nil
}

func (m *MemArea) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored items.
func (m *MemArea) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Snapshot returns a copy of the raw stored text keyed by stored key.
func (m *MemArea) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.items)
}

// Clear drops every item, like the end of a browser session.
func (m *MemArea) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.items)
	return nil
}

var (
	_ Area    = (*MemArea)(nil)
	_ Clearer = (*MemArea)(nil)
)
