package kite

import (
	"context"
	"errors"
	"sync"
	"time"

	"kite_tap/internal/domain"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"
	"github.com/zerodha/gokiteconnect/v4/models"
	kiteticker "github.com/zerodha/gokiteconnect/v4/ticker"
)

// Options configures the vendor ticker. Reconnect policy knobs are passed
// straight through to the SDK; the adapter owns no retry logic of its own.
type Options struct {
	APIKey      string
	AccessToken string

	ConnectTimeout      time.Duration
	ReconnectMaxRetries int
	ReconnectMaxDelay   time.Duration
}

// Client adapts the Kite ticker SDK to the domain.StreamClient capability.
// Connection management, the binary tick codec, and reconnect backoff all
// live inside the SDK.
type Client struct {
	ticker   *kiteticker.Ticker
	stopOnce sync.Once
}

// NewClient builds a ticker from credentials. Credential shape is checked
// here; whether they are accepted is only known at connect time.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, &domain.AuthConfigError{Field: "api_key", Err: errors.New("missing value")}
	}
	if opts.AccessToken == "" {
		return nil, &domain.AuthConfigError{Field: "access_token", Err: errors.New("missing value")}
	}

	t := kiteticker.New(opts.APIKey, opts.AccessToken)
	t.SetAutoReconnect(true)

	if opts.ConnectTimeout > 0 {
		t.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.ReconnectMaxRetries > 0 {
		t.SetReconnectMaxRetries(opts.ReconnectMaxRetries)
	}
	if opts.ReconnectMaxDelay > 0 {
		if err := t.SetReconnectMaxDelay(opts.ReconnectMaxDelay); err != nil {
			return nil, err
		}
	}

	return &Client{ticker: t}, nil
}

// Attach registers the listener for every callback the feed delivers.
// Must be called before Run.
func (c *Client) Attach(l domain.StreamListener) {
	c.ticker.OnConnect(l.OnConnect)
	c.ticker.OnTick(func(tick models.Tick) {
		l.OnTick(toDomainTick(tick))
	})
	c.ticker.OnClose(l.OnClose)
	c.ticker.OnError(func(err error) {
		l.OnError(domain.NewNetworkError("stream", err))
	})
	c.ticker.OnReconnect(l.OnReconnect)
	c.ticker.OnNoReconnect(l.OnNoReconnect)
	c.ticker.OnOrderUpdate(func(order kiteconnect.Order) {
		l.OnOrderUpdate(toOrderUpdate(order))
	})
}

// Run blocks inside the SDK's serve loop until the connection is torn
// down or ctx is canceled. A canceled context is a clean shutdown, not
// an error.
func (c *Client) Run(ctx context.Context) error {
	c.ticker.ServeWithContext(ctx)
	return nil
}

// Close stops the serve loop. Safe to call more than once.
func (c *Client) Close() {
	c.stopOnce.Do(c.ticker.Stop)
}

// Subscribe registers interest in the given instrument tokens.
// Re-subscribing an already-subscribed token is an update, not an error.
func (c *Client) Subscribe(tokens []uint32) error {
	if err := c.ticker.Subscribe(tokens); err != nil {
		return &domain.SubscriptionError{Op: "subscribe", Tokens: tokens, Err: err}
	}
	return nil
}

// SetMode switches the delivery granularity for the given tokens
func (c *Client) SetMode(mode domain.Mode, tokens []uint32) error {
	if err := c.ticker.SetMode(toVendorMode(mode), tokens); err != nil {
		return &domain.SubscriptionError{Op: "set_mode", Tokens: tokens, Err: err}
	}
	return nil
}

func toVendorMode(m domain.Mode) kiteticker.Mode {
	switch m {
	case domain.ModeLTP:
		return kiteticker.ModeLTP
	case domain.ModeFull:
		return kiteticker.ModeFull
	default:
		return kiteticker.ModeQuote
	}
}
