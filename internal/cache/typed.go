package cache

import (
	"encoding/json"
	"log/slog"

	"browserstore/internal/kv"
)

// Typed reads cached values as T. Values read back from storage are
// decoded through JSON, so T must round-trip through encoding/json.
type Typed[T any] struct {
	c *Cache
}

func NewTyped[T any](c *Cache) Typed[T] {
	return Typed[T]{c: c}
}

// Get is Cache.Get with a typed producer. If the cached value does not
// decode as T, the producer's value is returned instead.
func (t Typed[T]) Get(key string, initial func() T, opts ...Option) T {
	var produced *T
	v := t.c.Get(key, kv.Deferred(func() any {
		out := initial()
		produced = &out
		return out
	}), opts...)
	if produced != nil {
		return *produced
	}
	if out, ok := v.(T); ok {
		return out
	}

	var out T
	data, err := json.Marshal(v)
	if err == nil {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		t.c.log.Error("cache value has unexpected type", slog.String("key", key), slog.Any("error", err))
		return initial()
	}
	return out
}

// Set stores v under key with a fresh expiry.
func (t Typed[T]) Set(key string, v T, opts ...Option) {
	t.c.Set(key, v, opts...)
}
