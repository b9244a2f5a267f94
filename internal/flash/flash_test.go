package flash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"browserstore/internal/codec"
	"browserstore/internal/kv"
	"browserstore/internal/storage"
)

func newFlasher(c codec.Codec) (*Flasher, *kv.MemArea) {
	session := kv.NewMemArea()
	facade := storage.New(storage.Config{
		Durable:   kv.New("local", kv.NewMemArea(), nil),
		Transient: kv.New("session", session, nil),
		Codec:     c,
	})
	return New(facade.Flash(), c, nil), session
}

func TestFlash_SingleUse(t *testing.T) {
	for name, c := range map[string]codec.Codec{
		"plain":   {},
		"hashed":  {HashKeys: true},
		"blake2b": {HashKeys: true, Hash: codec.BLAKE2b},
	} {
		t.Run(name, func(t *testing.T) {
			f, session := newFlasher(c)

			key := f.Flash(map[string]any{"a": 1}, kv.Value{})
			require.IsType(t, "", key)
			require.Equal(t, 1, session.Len())

			require.Equal(t, map[string]any{"a": float64(1)}, f.Flash(key, kv.Literal("def")))
			require.Equal(t, "def", f.Flash(key, kv.Literal("def")))
			require.Zero(t, session.Len())
		})
	}
}

func TestFlash_DerivedKeyIsContentDigest(t *testing.T) {
	f, _ := newFlasher(codec.Codec{})

	key, err := f.Put([]string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, codec.Codec{}.Digest([]byte(`["x","y"]`)), key)

	again, err := f.Put([]string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, key, again)
}

func TestFlash_FalsyIsNoop(t *testing.T) {
	f, session := newFlasher(codec.Codec{})
	for _, v := range []any{nil, "", false, 0} {
		require.Nil(t, f.Flash(v, kv.Literal("def")))
	}
	require.Zero(t, session.Len())
}

func TestFlash_UnknownKeyReturnsDefault(t *testing.T) {
	f, _ := newFlasher(codec.Codec{})
	require.Equal(t, "def", f.Flash("missing", kv.Literal("def")))
	require.Equal(t, "made", f.Take("missing", kv.Deferred(func() any { return "made" })))
}

func TestFlash_UnencodableValue(t *testing.T) {
	f, session := newFlasher(codec.Codec{})
	require.Nil(t, f.Flash(map[string]any{"ch": make(chan int)}, kv.Value{}))
	require.Zero(t, session.Len())
}
