package kv

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Store is the JSON key/value store over one Area.
//
// Store never panics on storage failure: reads fall back to the default and
// failures are logged.
type Store struct {
	name string
	area Area
	log  *slog.Logger
}

// New builds a Store named after its area ("local", "session"). A nil area
// yields an unavailable store. A nil logger uses slog.Default.
func New(name string, area Area, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		name: name,
		area: area,
		log:  log.With(slog.String("area", name)),
	}
}

// Unavailable returns a store for a host without a storage facility.
func Unavailable(name string) *Store {
	return New(name, nil, nil)
}

func (s *Store) Name() string { return s.name }

// Available reports whether the store has a backing area.
func (s *Store) Available() bool {
	return s != nil && s.area != nil
}

// Lookup reads the raw JSON text stored under key. Empty stored text counts
// as absent.
func (s *Store) Lookup(key string) Result {
	if !s.Available() {
		return Missed()
	}
	text, ok, err := s.area.GetItem(key)
	if err != nil {
		return Failed(fmt.Errorf("get %q from %s: %w", key, s.name, err))
	}
	if !ok || text == "" {
		return Missed()
	}
	return Found(text)
}

// Get returns the decoded value under key, or the resolved default.
func (s *Store) Get(key string, def Value) any {
	if !s.Available() {
		return def.Resolve()
	}
	v, err := Resolve(s.Lookup(key), def)
	if err != nil {
		s.log.Error("get failed", slog.String("key", key), slog.Any("error", err))
	}
	return v
}

// Has reports whether Get yields a truthy value. A stored false, 0 or ""
// reads as absent.
func (s *Store) Has(key string) bool {
	return Truthy(s.Get(key, Value{}))
}

// Set resolves v and stores its JSON form under key. A falsy resolved value
// removes key and writes nothing.
func (s *Store) Set(key string, v Value) error {
	if !s.Available() {
		return nil
	}
	resolved := v.Resolve()
	if !Truthy(resolved) {
		return s.Remove(key)
	}
	data, err := json.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.area.SetItem(key, string(data)); err != nil {
		return fmt.Errorf("set %q in %s: %w", key, s.name, err)
	}
	return nil
}

// Pull returns the value under key, like Get, then removes it.
func (s *Store) Pull(key string, def Value) any {
	v := s.Get(key, def)
	if err := s.Remove(key); err != nil {
		s.log.Error("pull remove failed", slog.String("key", key), slog.Any("error", err))
	}
	return v
}

// Clear drops every item of the area. Areas that cannot be cleared are left
// as they are.
func (s *Store) Clear() error {
	if !s.Available() {
		return nil
	}
	c, ok := s.area.(Clearer)
	if !ok {
		return nil
	}
	if err := c.Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", s.name, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if !s.Available() {
		return nil
	}
	if err := s.area.RemoveItem(key); err != nil {
		return fmt.Errorf("remove %q from %s: %w", key, s.name, err)
	}
	return nil
}
