// Package storage binds the durable and transient roles to key/value
// stores and applies the configured codec on every read and write.
//
// The durable role backs the expiring cache; the transient role backs
// flash values. Either role may point at either store.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"browserstore/internal/codec"
	"browserstore/internal/kv"
)

// Config selects the store for each role.
type Config struct {
	Durable   *kv.Store
	Transient *kv.Store
	Codec     codec.Codec
	Logger    *slog.Logger
}

// Facade owns both roles.
type Facade struct {
	storage *Storage
	flash   *Flash
}

func New(cfg Config) *Facade {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Facade{
		storage: &Storage{role: newRole("storage", cfg.Durable, cfg.Codec, log)},
		flash:   &Flash{role: newRole("flash", cfg.Transient, cfg.Codec, log)},
	}
}

// Storage returns the durable role.
func (f *Facade) Storage() *Storage { return f.storage }

// Flash returns the transient role.
func (f *Facade) Flash() *Flash { return f.flash }

// Storage is the durable role.
type Storage struct{ role }

// Flash is the transient role. Unlike Storage it supports Pull.
type Flash struct{ role }

// Pull reads key like Get and removes it.
func (f *Flash) Pull(key string, def kv.Value) any {
	if key == "" {
		return def.Resolve()
	}
	res := f.decode(f.store.Lookup(f.codec.Key(key)))
	if err := f.store.Remove(f.codec.Key(key)); err != nil {
		f.log.Error("pull remove failed", slog.String("key", key), slog.Any("error", err))
	}
	return f.resolve(key, res, def)
}

type role struct {
	store *kv.Store
	codec codec.Codec
	log   *slog.Logger
}

func newRole(name string, store *kv.Store, c codec.Codec, log *slog.Logger) role {
	if store == nil {
		store = kv.Unavailable(name)
	}
	return role{
		store: store,
		codec: c,
		log:   log.With(slog.String("role", name), slog.String("area", store.Name())),
	}
}

// Store returns the key/value store the role is bound to.
func (r role) Store() *kv.Store { return r.store }

// Set stores v under key. An empty key is ignored.
func (r role) Set(key string, v kv.Value) error {
	if key == "" {
		return nil
	}
	if !r.codec.Enabled() {
		return r.store.Set(key, v)
	}
	text, err := r.codec.EncodeValue(v.Resolve())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return r.store.Set(r.codec.Key(key), kv.Literal(text))
}

// Remove deletes key. An empty key is ignored.
func (r role) Remove(key string) error {
	if key == "" {
		return nil
	}
	return r.store.Remove(r.codec.Key(key))
}

// Lookup reads the JSON text stored for key, decoding it first when the
// codec is enabled. An empty key is a miss.
func (r role) Lookup(key string) kv.Result {
	if key == "" {
		return kv.Missed()
	}
	return r.decode(r.store.Lookup(r.codec.Key(key)))
}

// Get returns the decoded value for key, or the resolved default.
func (r role) Get(key string, def kv.Value) any {
	if key == "" {
		return def.Resolve()
	}
	return r.resolve(key, r.Lookup(key), def)
}

// decode turns a stored base64 envelope back into plain JSON text.
func (r role) decode(res kv.Result) kv.Result {
	if !r.codec.Enabled() || res.Status != kv.StatusOK {
		return res
	}
	var encoded string
	if err := res.Decode(&encoded); err != nil {
		return kv.Failed(err)
	}
	var raw json.RawMessage
	if err := r.codec.DecodeValue(encoded, &raw); err != nil {
		return kv.Failed(err)
	}
	return kv.Found(string(raw))
}

func (r role) resolve(key string, res kv.Result, def kv.Value) any {
	v, err := kv.Resolve(res, def)
	if err != nil {
		r.log.Error("get failed", slog.String("key", key), slog.Any("error", err))
	}
	return v
}
