// Package state keeps an in-process value in step with one key of a
// key/value store. Reads happen when the State is created or rekeyed;
// every write goes to both the observed value and the store.
package state

import (
	"log/slog"
	"sync"

	"browserstore/internal/kv"
)

// State is a persisted value bound to one key.
type State struct {
	store *kv.Store
	log   *slog.Logger

	mu      sync.Mutex
	key     string
	initial kv.Value
	value   any
}

// New reads key from store, falling back to initial. With a nil or
// unavailable store the observed value starts as nil and writes are dropped.
func New(store *kv.Store, key string, initial kv.Value, log *slog.Logger) *State {
	if store == nil {
		store = kv.Unavailable("")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &State{
		store:   store,
		log:     log.With(slog.String("area", store.Name())),
		key:     key,
		initial: initial,
	}
	if store.Available() {
		s.value = store.Get(key, initial)
	}
	return s
}

// Value returns the observed value.
func (s *State) Value() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set observes v and stores it.
func (s *State) Set(v any) {
	s.Update(func(any) any { return v })
}

// Update replaces the observed value with fn(previous) and stores it.
func (s *State) Update(fn func(prev any) any) {
	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	key := s.key
	s.mu.Unlock()

	if err := s.store.Set(key, kv.Literal(next)); err != nil {
		s.log.Error("state write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// SetKey rebinds the state to key and reads it again.
func (s *State) SetKey(key string) {
	s.mu.Lock()
	s.key = key
	initial := s.initial
	s.mu.Unlock()

	v := s.store.Get(key, initial)

	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}
