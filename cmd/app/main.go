package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kite_tap/internal/app"
	"kite_tap/internal/infra"
	"kite_tap/internal/infra/kite"
	"kite_tap/internal/tap"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Seed Instrument Registry
	bootstrap.SeedInstruments(ctx)

	cfg := bootstrap.Config
	slog.InfoContext(ctx, "Credentials loaded",
		slog.String("api_key", cfg.Kite.APIKey),
		slog.String("access_token", cfg.RedactedToken()))

	// 5. Vendor Streaming Client + Tap
	client, err := kite.NewClient(kite.Options{
		APIKey:              cfg.Kite.APIKey,
		AccessToken:         cfg.Kite.AccessToken,
		ConnectTimeout:      time.Duration(cfg.Kite.ConnectTimeoutSec) * time.Second,
		ReconnectMaxRetries: cfg.Kite.Reconnect.MaxRetries,
		ReconnectMaxDelay:   time.Duration(cfg.Kite.Reconnect.MaxDelaySec) * time.Second,
	})
	if err != nil {
		slog.Error("❌ Ticker initialization failed", slog.Any("error", err))
		os.Exit(1)
	}

	t := tap.New(client, tap.Options{
		Tokens: cfg.Tokens(),
		Mode:   cfg.Mode(),
		Labels: bootstrap.Labels(),
	})
	client.Attach(t)

	slog.InfoContext(ctx, "✨ Kite Tap operational. Press Ctrl+C to exit.",
		slog.String("mode", cfg.Kite.Mode),
		slog.Int("instruments", len(cfg.Kite.Instruments)))

	// 6. Run blocks until teardown or interrupt
	if err := t.Run(ctx); err != nil {
		slog.Error("Tap exited with error", slog.Any("error", err))
		os.Exit(1)
	}

	snap := infra.GlobalMetrics.Snapshot()
	slog.Info("👋 Shutting down gracefully...",
		slog.Uint64("ticks", snap.TicksReceived),
		slog.Uint64("reconnects", snap.ReconnectAttempts),
		slog.Uint64("errors", snap.ErrorsTotal))
}
