package cache

import (
	"sync"

	"browserstore/internal/kv"
)

// Binding is a read-and-subscribe view of one cache key. It reads through
// the cache when created and on Reload, and SetCache writes through the
// cache and updates the observed value at once.
type Binding struct {
	c *Cache

	mu      sync.Mutex
	key     string
	opts    []Option
	data    any
	subs    map[int]func(any)
	nextSub int
}

// Bind builds a Binding for key and performs the first read.
func (c *Cache) Bind(key string, initial kv.Value, opts ...Option) *Binding {
	b := &Binding{
		c:    c,
		key:  key,
		opts: opts,
		subs: map[int]func(any){},
	}
	b.data = c.Get(key, initial, opts...)
	return b
}

// Data returns the observed value.
func (b *Binding) Data() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Key returns the bound key.
func (b *Binding) Key() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.key
}

// SetCache stores v under the bound key and makes it the observed value.
// Without options the TTL given to Bind applies.
func (b *Binding) SetCache(v any, opts ...Option) {
	b.mu.Lock()
	if len(opts) == 0 {
		opts = b.opts
	}
	key := b.key
	b.mu.Unlock()

	b.c.Set(key, v, opts...)
	b.publish(v)
}

// Reload rebinds to key, initial and opts and reads again.
func (b *Binding) Reload(key string, initial kv.Value, opts ...Option) {
	b.mu.Lock()
	b.key, b.opts = key, opts
	b.mu.Unlock()

	b.publish(b.c.Get(key, initial, opts...))
}

// Subscribe registers fn to receive every new observed value. The returned
// func removes the subscription.
func (b *Binding) Subscribe(fn func(any)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *Binding) publish(v any) {
	b.mu.Lock()
	b.data = v
	subs := make([]func(any), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
