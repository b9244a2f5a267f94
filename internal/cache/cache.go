package cache

import (
	"log/slog"
	"time"

	"browserstore/internal/kv"
	"browserstore/internal/metrics"
	"browserstore/internal/storage"
)

// DefaultExpire is the TTL in seconds used when Config.DefaultExpire is nil.
const DefaultExpire = 10

// Config controls the cache's storage and defaults.
//
// DefaultExpire is in seconds. Nil selects DefaultExpire; zero or a negative
// value makes every call that does not override it recompute.
type Config struct {
	Storage       *storage.Storage
	DefaultExpire *int
	Now           func() time.Time
	Logger        *slog.Logger
	Metrics       metrics.Cache
}

// Entry is the stored form of a cached value.
type Entry struct {
	// Expire is the epoch-millisecond instant after which Value is stale.
	Expire int64 `json:"expire"`
	Value  any   `json:"value"`
}

// Options are per-call settings.
type Options struct {
	// Expire is the TTL in seconds.
	Expire int
}

type Option func(*Options)

// WithExpire overrides the TTL for one call.
func WithExpire(seconds int) Option {
	return func(o *Options) {
		o.Expire = seconds
	}
}

// Cache is the expiring cache.
type Cache struct {
	storage       *storage.Storage
	defaultExpire int
	now           func() time.Time
	log           *slog.Logger
	metrics       metrics.Cache
}

// New never returns a nil Cache. A Config without Storage yields a cache
// that recomputes on every call.
func New(cfg Config) *Cache {
	c := &Cache{
		storage:       cfg.Storage,
		defaultExpire: DefaultExpire,
		now:           cfg.Now,
		log:           cfg.Logger,
		metrics:       cfg.Metrics,
	}
	if c.storage == nil {
		c.storage = storage.New(storage.Config{}).Storage()
	}
	if cfg.DefaultExpire != nil {
		c.defaultExpire = *cfg.DefaultExpire
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.metrics == nil {
		c.metrics = metrics.NopCache()
	}
	return c
}

func (c *Cache) options(opts []Option) Options {
	o := Options{Expire: c.defaultExpire}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Get returns the cached value for key while it is fresh. Otherwise it
// resolves initial, stores it with a new expiry and returns it.
//
// An entry is fresh while now <= Entry.Expire. When the stored entry cannot
// be read, the resolved initial value is returned without being stored.
//
// A hit returns the value as decoded from JSON, so numbers come back as
// float64 and objects as map[string]any, while a miss returns the resolved
// initial value unchanged. Use Typed for a stable result type.
func (c *Cache) Get(key string, initial kv.Value, opts ...Option) any {
	o := c.options(opts)
	now := c.now()

	res := c.storage.Lookup(key)
	switch res.Status {
	case kv.StatusErr:
		return c.readFailed(key, res.Err, initial)
	case kv.StatusOK:
		var entry *Entry
		if err := res.Decode(&entry); err != nil {
			return c.readFailed(key, err, initial)
		}
		if entry == nil || o.Expire < 1 {
			break
		}
		if now.UnixMilli() <= entry.Expire {
			c.metrics.Hit()
			return entry.Value
		}
		c.metrics.Expired()
		c.log.Info("cache expired",
			slog.String("key", key),
			slog.Int64("now", now.UnixMilli()),
			slog.Int64("expire", entry.Expire),
		)
		return c.store(key, initial.Resolve(), o.Expire, now)
	}

	c.metrics.Miss()
	return c.store(key, initial.Resolve(), o.Expire, now)
}

// Set stores v under key with a fresh expiry, whatever is stored already.
func (c *Cache) Set(key string, v any, opts ...Option) {
	o := c.options(opts)
	c.store(key, v, o.Expire, c.now())
}

// Remove deletes the entry for key.
func (c *Cache) Remove(key string) {
	if err := c.storage.Remove(key); err != nil {
		c.log.Error("cache remove failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *Cache) store(key string, v any, expire int, now time.Time) any {
	entry := Entry{
		Expire: now.Add(time.Duration(expire) * time.Second).UnixMilli(),
		Value:  v,
	}
	if err := c.storage.Set(key, kv.Literal(entry)); err != nil {
		c.metrics.WriteError()
		c.log.Error("cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return v
}

func (c *Cache) readFailed(key string, err error, initial kv.Value) any {
	c.metrics.ReadError()
	c.log.Error("cache read failed", slog.String("key", key), slog.Any("error", err))
	return initial.Resolve()
}
