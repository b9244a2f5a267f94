// Package app wires the storage areas, roles, cache and flash values from
// a config.Config.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"browserstore/internal/cache"
	"browserstore/internal/codec"
	"browserstore/internal/config"
	"browserstore/internal/flash"
	"browserstore/internal/kv"
	natskv "browserstore/internal/kv/nats"
	"browserstore/internal/kv/sqlite"
	promadapter "browserstore/internal/metrics/prometheus"
	"browserstore/internal/storage"
)

type Options struct {
	Log *slog.Logger
	// Registerer receives the cache metrics. Nil creates a private registry.
	Registerer prometheus.Registerer
	// Now overrides the cache clock.
	Now func() time.Time
}

// App is the assembled store stack.
type App struct {
	Local   *kv.Store
	Session *kv.Store
	Codec   codec.Codec
	Facade  *storage.Facade
	Cache   *cache.Cache
	Flash   *flash.Flasher

	log     *slog.Logger
	closers []io.Closer
}

// Open builds the stack described by cfg. Call Close to release backends.
func Open(cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	a := &App{Codec: cfg.Codec(), log: log}

	localArea, err := a.openLocalArea(cfg)
	if err != nil {
		return nil, err
	}
	a.Local = kv.New(string(config.AreaLocal), localArea, log)
	a.Session = kv.New(string(config.AreaSession), kv.NewMemArea(), log)

	a.Facade = storage.New(storage.Config{
		Durable:   a.store(cfg.Storage),
		Transient: a.store(cfg.Flash),
		Codec:     a.Codec,
		Logger:    log,
	})
	expire := cfg.CacheExpire
	a.Cache = cache.New(cache.Config{
		Storage:       a.Facade.Storage(),
		DefaultExpire: &expire,
		Now:           opts.Now,
		Logger:        log.With(slog.String("component", "cache")),
		Metrics:       promadapter.NewCacheMetrics(reg),
	})
	a.Flash = flash.New(a.Facade.Flash(), a.Codec, log.With(slog.String("component", "flash")))

	log.Debug("browserstore ready",
		slog.String("storage", string(cfg.Storage)),
		slog.String("flash", string(cfg.Flash)),
		slog.String("local_backend", string(cfg.LocalBackend)),
		slog.Bool("hash", cfg.Hash),
		slog.Int("cache_expire", cfg.CacheExpire),
	)
	return a, nil
}

func (a *App) openLocalArea(cfg config.Config) (kv.Area, error) {
	switch cfg.LocalBackend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite local area: %w", err)
		}
		a.closers = append(a.closers, db)
		return db.Area(string(config.AreaLocal)), nil
	case config.BackendNATS:
		area, err := natskv.Open(natskv.Config{
			Connect: natskv.ConnectURL(cfg.NATSURL),
			Bucket:  cfg.NATSBucket,
		})
		if err != nil {
			return nil, fmt.Errorf("open nats local area: %w", err)
		}
		a.closers = append(a.closers, area)
		return area, nil
	default:
		return kv.NewMemArea(), nil
	}
}

func (a *App) store(name config.AreaName) *kv.Store {
	if name == config.AreaSession {
		return a.Session
	}
	return a.Local
}

// Close ends the session, dropping the session area, and releases every
// backend. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	if err := a.Session.Clear(); err != nil {
		errs = append(errs, err)
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
