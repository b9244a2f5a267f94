package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"browserstore/internal/app"
	"browserstore/internal/cache"
	"browserstore/internal/config"
	"browserstore/internal/kv"
	"browserstore/internal/state"
	"browserstore/internal/strutil"
)

func main() {
	// Signal-aware context; SIGINT/SIGTERM stops the demo and the metrics server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("browserstore: %v", err)
	}
	level, _ := cfg.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.Open(cfg, app.Options{Log: log, Registerer: reg})
	if err != nil {
		config.Exitf("browserstore: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("close", slog.Any("error", err))
		}
	}()

	log.Info("browserstore demo starting",
		slog.String("local_backend", string(cfg.LocalBackend)),
		slog.String("storage", string(cfg.Storage)),
		slog.String("flash", string(cfg.Flash)),
		slog.Bool("hash", cfg.Hash),
	)

	if err := runDemo(ctx, a, log); err != nil {
		log.Info("demo interrupted", slog.Any("reason", err))
		return
	}

	if cfg.MetricsAddr == "" {
		fmt.Println("Done.")
		return
	}
	serveMetrics(ctx, cfg.MetricsAddr, reg, log)
}

func runDemo(ctx context.Context, a *app.App, log *slog.Logger) error {
	// -------------------------------------------------------------------
	// 1) Expiring cache: miss, hit, expiry
	// -------------------------------------------------------------------
	loads := 0
	fetch := kv.Deferred(func() any {
		loads++
		return map[string]any{"products": []string{"lamp", "desk"}, "load": loads}
	})

	a.Cache.Get("products", fetch, cache.WithExpire(1))
	a.Cache.Get("products", fetch, cache.WithExpire(1))
	log.Info("cache read twice", slog.Int("loads", loads))

	if err := sleep(ctx, 1100*time.Millisecond); err != nil {
		return err
	}
	a.Cache.Get("products", fetch, cache.WithExpire(1))
	log.Info("cache read after expiry",
		slog.String("summary", fmt.Sprintf("%d load%s", loads, strutil.Plural(loads))),
	)

	// -------------------------------------------------------------------
	// 2) Read-and-subscribe binding
	// -------------------------------------------------------------------
	b := a.Cache.Bind("greeting", kv.Literal("hello"), cache.WithExpire(30))
	unsubscribe := b.Subscribe(func(v any) { log.Info("binding changed", slog.Any("data", v)) })
	b.SetCache("bonjour")
	unsubscribe()

	// -------------------------------------------------------------------
	// 3) Flash values across a single hand-off
	// -------------------------------------------------------------------
	key := a.Flash.Flash(map[string]any{"notice": "saved"}, kv.Value{})
	log.Info("flash stored", slog.Any("key", key))
	log.Info("flash taken", slog.Any("value", a.Flash.Flash(key, kv.Literal("none"))))
	log.Info("flash taken again", slog.Any("value", a.Flash.Flash(key, kv.Literal("none"))))

	// -------------------------------------------------------------------
	// 4) Persisted state
	// -------------------------------------------------------------------
	visits := state.New(a.Local, "visits", kv.Literal(float64(0)), log)
	visits.Update(func(prev any) any {
		n, _ := prev.(float64)
		return n + 1
	})
	n, _ := visits.Value().(float64)
	log.Info(strutil.Capitalize(fmt.Sprintf("visit number %d on %s", int(n), strutil.FullDate(time.Now()))))
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server", slog.Any("error", err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	wait := time.NewTimer(d)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wait.C:
		return nil
	}
}
