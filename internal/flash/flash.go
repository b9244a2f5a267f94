// Package flash passes a value across exactly one hand-off, such as a
// redirect: the first context stores the value and gets a key back, the
// second context exchanges the key for the value, which is deleted.
package flash

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"browserstore/internal/codec"
	"browserstore/internal/kv"
	"browserstore/internal/storage"
)

// Flasher stores single-use values in the transient role.
type Flasher struct {
	flash *storage.Flash
	codec codec.Codec
	log   *slog.Logger
}

func New(f *storage.Flash, c codec.Codec, log *slog.Logger) *Flasher {
	if log == nil {
		log = slog.Default()
	}
	return &Flasher{flash: f, codec: c, log: log}
}

// Flash takes the value stored under value when value is a string, and
// otherwise stores value and returns its derived key. A falsy value
// (including "") does nothing and returns nil.
func (f *Flasher) Flash(value any, def kv.Value) any {
	if !kv.Truthy(value) {
		return nil
	}
	if key, ok := value.(string); ok {
		return f.Take(key, def)
	}
	key, err := f.Put(value)
	if err != nil {
		f.log.Error("flash put failed", slog.Any("error", err))
		return nil
	}
	return key
}

// Put stores value under the digest of its JSON form and returns that key.
// Equal values share a key.
func (f *Flasher) Put(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("flash key: %w", err)
	}
	key := f.codec.Digest(data)
	if err := f.flash.Set(key, kv.Literal(value)); err != nil {
		return "", fmt.Errorf("flash %s: %w", key, err)
	}
	return key, nil
}

// Take returns the value stored under key, or the resolved default, and
// deletes it.
func (f *Flasher) Take(key string, def kv.Value) any {
	return f.flash.Pull(key, def)
}
