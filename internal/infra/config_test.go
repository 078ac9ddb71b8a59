package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kite_tap/internal/domain"
)

const validYAML = `
app:
  name: "Kite Tap"
  version: "test"

kite:
  api_key: "ABC"
  access_token: "XYZ"
  mode: "quote"
  instruments:
    - token: 291849
      symbol: "GIFTNIFTY"
      name: "GIFT NIFTY"
  connect_timeout_sec: 7
  reconnect:
    max_retries: 300
    max_delay_sec: 60

logging:
  level: "info"
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg, err := LoadConfig(writeTempConfig(t, validYAML))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.Kite.APIKey != "ABC" {
			t.Errorf("Expected api key ABC, got %s", cfg.Kite.APIKey)
		}
		if cfg.Mode() != domain.ModeQuote {
			t.Errorf("Expected quote mode, got %s", cfg.Mode())
		}

		tokens := cfg.Tokens()
		if len(tokens) != 1 || tokens[0] != 291849 {
			t.Errorf("Expected tokens [291849], got %v", tokens)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, domain.ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("Env Override", func(t *testing.T) {
		t.Setenv("KITE_API_KEY", "env-key")
		t.Setenv("KITE_ACCESS_TOKEN", "env-token")

		cfg, err := LoadConfig(writeTempConfig(t, validYAML))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Kite.APIKey != "env-key" {
			t.Errorf("Env var should override yaml, got %s", cfg.Kite.APIKey)
		}
		if cfg.Kite.AccessToken != "env-token" {
			t.Errorf("Env var should override yaml, got %s", cfg.Kite.AccessToken)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := LoadConfig(writeTempConfig(t, validYAML))
		if err != nil {
			t.Fatalf("base config should load: %v", err)
		}
		return cfg
	}

	t.Run("Missing Credentials", func(t *testing.T) {
		cfg := base(t)
		cfg.Kite.AccessToken = ""

		var authErr *domain.AuthConfigError
		if err := cfg.Validate(); !errors.As(err, &authErr) {
			t.Fatalf("Expected AuthConfigError, got %v", err)
		} else if authErr.Field != "access_token" {
			t.Errorf("Expected field access_token, got %s", authErr.Field)
		}
	})

	t.Run("Malformed Credentials", func(t *testing.T) {
		cfg := base(t)
		cfg.Kite.APIKey = "abc def\n"

		var authErr *domain.AuthConfigError
		if err := cfg.Validate(); !errors.As(err, &authErr) {
			t.Fatalf("Expected AuthConfigError, got %v", err)
		}
	})

	t.Run("Invalid Mode", func(t *testing.T) {
		cfg := base(t)
		cfg.Kite.Mode = "turbo"

		if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidMode) {
			t.Errorf("Expected ErrInvalidMode, got %v", err)
		}
	})

	t.Run("No Instruments", func(t *testing.T) {
		cfg := base(t)
		cfg.Kite.Instruments = nil

		if err := cfg.Validate(); !errors.Is(err, domain.ErrNoInstruments) {
			t.Errorf("Expected ErrNoInstruments, got %v", err)
		}
	})

	t.Run("Zero Token", func(t *testing.T) {
		cfg := base(t)
		cfg.Kite.Instruments = []InstrumentConfig{{Token: 0, Symbol: "BAD"}}

		if err := cfg.Validate(); err == nil {
			t.Error("Zero token should be rejected")
		}
	})
}

func TestConfig_RedactedToken(t *testing.T) {
	cfg := &Config{}
	cfg.Kite.AccessToken = "mhP4vlFisy"

	redacted := cfg.RedactedToken()
	if redacted != "mhP4******" {
		t.Errorf("Expected mhP4******, got %s", redacted)
	}

	cfg.Kite.AccessToken = "ab"
	if cfg.RedactedToken() != "****" {
		t.Error("Short tokens should be fully masked")
	}
}
