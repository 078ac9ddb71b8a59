package app

import (
	"context"
	"log/slog"

	"kite_tap/internal/domain"
	"kite_tap/internal/infra"
	"kite_tap/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, registry)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping Kite Tap...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Instrument Registry (DB)
	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Instrument registry initialized")

	return nil
}

// SeedInstruments upserts the configured instruments into the registry so
// the renderer can label ticks by symbol instead of raw token
func (b *Bootstrap) SeedInstruments(ctx context.Context) {
	for _, ic := range b.Config.Kite.Instruments {
		select {
		case <-ctx.Done():
			return
		default:
		}

		inst := &domain.Instrument{
			Token:     ic.Token,
			Symbol:    ic.Symbol,
			Name:      ic.Name,
			IsWatched: true,
		}

		// Preserve fields an earlier run may have enriched
		if existing, _ := b.Storage.GetInstrument(ic.Token); existing != nil {
			if inst.Name == "" {
				inst.Name = existing.Name
			}
			if inst.Exchange == "" {
				inst.Exchange = existing.Exchange
			}
		}

		if err := b.Storage.UpsertInstrument(inst); err != nil {
			slog.Error("Failed to upsert instrument",
				slog.Uint64("token", uint64(ic.Token)),
				slog.Any("error", err))
		}
	}

	slog.Info("✨ Instrument seeding completed",
		slog.Int("instruments", len(b.Config.Kite.Instruments)))
}

// Labels returns the token -> symbol map used for tick headers. Falls back
// to the config when the registry is unreadable; labeling is best-effort.
func (b *Bootstrap) Labels() map[uint32]string {
	labels, err := b.Storage.Labels()
	if err != nil || len(labels) == 0 {
		labels = make(map[uint32]string, len(b.Config.Kite.Instruments))
		for _, ic := range b.Config.Kite.Instruments {
			labels[ic.Token] = ic.Symbol
		}
	}
	return labels
}
