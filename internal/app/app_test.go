package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"browserstore/internal/cache"
	"browserstore/internal/config"
	"browserstore/internal/kv"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestOpen_DefaultRoles(t *testing.T) {
	a, err := Open(defaultConfig(t), Options{})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	require.Equal(t, "local", a.Facade.Storage().Store().Name())
	require.Equal(t, "session", a.Facade.Flash().Store().Name())

	require.Equal(t, "v", a.Cache.Get("k", kv.Literal("v")))
	require.True(t, a.Local.Has("k"))
	require.False(t, a.Session.Has("k"))

	key := a.Flash.Flash([]int{1}, kv.Value{})
	require.True(t, a.Session.Has(key.(string)))
}

func TestOpen_SwappedRoles(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Storage, cfg.Flash = config.AreaSession, config.AreaLocal

	a, err := Open(cfg, Options{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	a.Cache.Get("k", kv.Literal("v"))
	require.True(t, a.Session.Has("k"))
	require.False(t, a.Local.Has("k"))
}

func TestOpen_SQLitePersistsAcrossRestarts(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.LocalBackend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "store.db")
	cfg.Hash = true

	now := time.UnixMilli(1_700_000_000_000)
	clock := func() time.Time { return now }

	a, err := Open(cfg, Options{Now: clock})
	require.NoError(t, err)
	require.Equal(t, "first", a.Cache.Get("greeting", kv.Literal("first"), cache.WithExpire(60)))
	key := a.Flash.Flash(map[string]any{"msg": "hi"}, kv.Value{}).(string)
	require.NoError(t, a.Close())

	a, err = Open(cfg, Options{Now: clock})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.Equal(t, "first", a.Cache.Get("greeting", kv.Literal("second"), cache.WithExpire(60)))
	require.Equal(t, "gone", a.Flash.Flash(key, kv.Literal("gone")), "session area does not survive a restart")
}

func TestOpen_ZeroCacheExpireRecomputes(t *testing.T) {
	t.Setenv("BROWSERSTORE_CACHE_EXPIRE", "0")
	cfg := defaultConfig(t)
	require.Zero(t, cfg.CacheExpire)

	a, err := Open(cfg, Options{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.Equal(t, "old", a.Cache.Get("k", kv.Literal("old")))
	require.Equal(t, "new", a.Cache.Get("k", kv.Literal("new")))
}

func TestClose_ClearsSessionArea(t *testing.T) {
	a, err := Open(defaultConfig(t), Options{})
	require.NoError(t, err)

	require.NoError(t, a.Session.Set("k", kv.Literal("v")))
	require.NoError(t, a.Close())
	require.False(t, a.Session.Has("k"))
}

func TestOpen_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := Open(defaultConfig(t), Options{Registerer: reg})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	a.Cache.Get("k", kv.Literal(1))
	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.LocalBackend = "redis"
	_, err := Open(cfg, Options{})
	require.ErrorIs(t, err, config.ErrInvalid)
}
