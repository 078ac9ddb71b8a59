package tap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"kite_tap/internal/domain"
	"kite_tap/internal/infra"
)

// Options configures a Tap
type Options struct {
	Tokens  []uint32
	Mode    domain.Mode
	Out     io.Writer         // Tick sink, defaults to stdout
	Labels  map[uint32]string // token -> symbol, for tick headers
	Logger  *slog.Logger
	Metrics *infra.Metrics
}

// Tap wires a streaming client's lifecycle and data callbacks together:
// subscribe on connect, render ticks as they arrive, observe everything
// else. It owns no state machine and no retry policy; the client does.
type Tap struct {
	client  domain.StreamClient
	tokens  []uint32
	mode    domain.Mode
	out     io.Writer
	render  *Renderer
	log     *slog.Logger
	metrics *infra.Metrics

	closeOnce sync.Once
}

// New creates a Tap around an injected streaming client
func New(client domain.StreamClient, opts Options) *Tap {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = infra.GlobalMetrics
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeQuote
	}

	return &Tap{
		client:  client,
		tokens:  opts.Tokens,
		mode:    opts.Mode,
		out:     opts.Out,
		render:  NewRenderer(opts.Labels),
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
}

// Run blocks until the connection is torn down or ctx is canceled.
// The client is released exactly once on every exit path, including
// interrupt signals arriving mid-stream.
func (t *Tap) Run(ctx context.Context) error {
	defer t.release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.release()
		case <-done:
		}
	}()

	return t.client.Run(ctx)
}

func (t *Tap) release() {
	t.closeOnce.Do(t.client.Close)
}

// OnConnect issues the subscription against the freshly connected client.
// Runs again after every successful reconnect; the feed treats a repeat
// subscribe as an update, so this is safe.
func (t *Tap) OnConnect() {
	t.metrics.SetConnected(true)
	t.log.Info("✅ Connected to market data feed")

	if err := t.client.Subscribe(t.tokens); err != nil {
		t.metrics.RecordError()
		t.log.Error("Subscribe failed", slog.Any("error", err))
		return
	}

	if err := t.client.SetMode(t.mode, t.tokens); err != nil {
		t.metrics.RecordError()
		t.log.Error("Set mode failed", slog.Any("error", err))
		return
	}

	t.log.Info("Subscription request sent",
		slog.String("mode", string(t.mode)),
		slog.Int("instruments", len(t.tokens)))
}

// OnTick renders one block per tick to the output sink, in arrival order
func (t *Tap) OnTick(tick domain.Tick) {
	t.metrics.RecordTick()

	if err := t.render.Render(t.out, tick); err != nil {
		t.metrics.RecordError()
		t.log.Error("Tick render failed", slog.Any("error", err))
	}
}

// OnClose observes a connection teardown. Recovery belongs to the client.
func (t *Tap) OnClose(code int, reason string) {
	t.metrics.SetConnected(false)
	t.log.Warn("Connection closed",
		slog.Int("code", code),
		slog.String("reason", reason))
}

// OnError observes a transport error. Recovery belongs to the client.
func (t *Tap) OnError(err error) {
	t.metrics.RecordError()
	t.log.Error("Stream error",
		slog.Any("error", err),
		slog.Bool("retriable", domain.IsRetriable(err)))
}

// OnReconnect observes one reconnect attempt
func (t *Tap) OnReconnect(attempt int, delay time.Duration) {
	t.metrics.SetConnected(false)
	t.metrics.RecordReconnect()
	t.log.Warn("Reconnecting",
		slog.Int("attempt", attempt),
		slog.Duration("delay", delay))
}

// OnNoReconnect observes reconnect exhaustion. The serve loop exits after
// this; Run unblocks and the process winds down.
func (t *Tap) OnNoReconnect(attempt int) {
	t.log.Error("Max reconnect attempts exceeded", slog.Int("attempts", attempt))
}

// OnOrderUpdate observes an order postback. Log-only: this tool places
// no orders.
func (t *Tap) OnOrderUpdate(order domain.OrderUpdate) {
	t.metrics.RecordOrderUpdate()
	t.log.Info("📋 Order update",
		slog.String("order_id", order.OrderID),
		slog.String("status", order.Status),
		slog.String("symbol", order.TradingSymbol),
		slog.String("type", order.TransactionType))
}
