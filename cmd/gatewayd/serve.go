package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"gatewayd/internal/auth"
	"gatewayd/internal/channel"
	"gatewayd/internal/config"
	"gatewayd/internal/httpapi"
	"gatewayd/internal/lora"
	"gatewayd/internal/observability"
	"gatewayd/internal/ratelimit"
	"gatewayd/internal/registry"
	"gatewayd/internal/routing"
	"gatewayd/internal/telemetry"
	"gatewayd/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// buildDeps assembles the services behind the API from cfg.
func buildDeps(cfg config.Config, logger zerolog.Logger, reg prometheus.Registerer) (httpapi.Deps, error) {
	var seedFn func() ([]types.Adapter, error)
	if cfg.AdaptersDir != "" {
		dir := cfg.AdaptersDir
		seedFn = func() ([]types.Adapter, error) { return registry.ScanAdapters(dir) }
	}
	var seed []types.Adapter
	if seedFn != nil {
		var err error
		if seed, err = seedFn(); err != nil {
			return httpapi.Deps{}, fmt.Errorf("scan adapters: %w", err)
		}
		logger.Info().Str("dir", cfg.AdaptersDir).Int("adapters", len(seed)).Msg("adapter seed scanned")
	}

	am := telemetry.NewAdapterMetrics(reg)
	mgr, err := lora.NewWithConfig(lora.Config{
		Seed:      seed,
		Exclusive: cfg.Exclusive(),
		Publisher: lora.Publishers{telemetry.NewEventLogger(logger), am},
	})
	if err != nil {
		return httpapi.Deps{}, err
	}
	snap := mgr.Snapshot()
	active := 0
	for _, a := range snap.Adapters {
		if a.Active {
			active++
		}
	}
	am.Observe(snap.LoadedCount, active, snap.ExclusiveMode)

	if cfg.AccessSecret == "" {
		logger.Warn().Msg("access_secret not set, using the built-in demo secret")
	}
	gate, err := auth.New(auth.Config{
		Secret:     cfg.AccessSecret,
		SigningKey: []byte(cfg.SessionKey),
		TTL:        cfg.SessionTTL,
	})
	if err != nil {
		return httpapi.Deps{}, err
	}

	models := registry.NewStore(nil)
	return httpapi.Deps{
		Adapters:  mgr,
		Seed:      seedFn,
		Models:    models,
		Limits:    ratelimit.NewStore(nil),
		Channels:  channel.NewStore(nil),
		Services:  routing.NewStore(models, nil),
		Dashboard: observability.New(models),
		Gate:      gate,
	}, nil
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := telemetry.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	deps, err := buildDeps(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	httpapi.SetLogger(logger.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Bool("exclusive", cfg.Exclusive()).Msg("gatewayd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	// Graceful shutdown (Ctrl+C / SIGTERM)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	logger.Info().Msg("gatewayd stopped")
	return nil
}
