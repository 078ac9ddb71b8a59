package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"kite_tap/internal/domain"

	"gopkg.in/yaml.v3"
)

// InstrumentConfig names one instrument to subscribe to
type InstrumentConfig struct {
	Token  uint32 `yaml:"token"`
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Config는 애플리케이션의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 민감 내용을 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Kite struct {
		// Credentials are expected via KITE_API_KEY / KITE_ACCESS_TOKEN.
		// The yaml fields exist only for local overrides and ship empty.
		APIKey      string             `yaml:"api_key"`
		AccessToken string             `yaml:"access_token"`
		Mode        string             `yaml:"mode"`
		Instruments []InstrumentConfig `yaml:"instruments"`

		ConnectTimeoutSec int `yaml:"connect_timeout_sec"`
		Reconnect         struct {
			MaxRetries  int `yaml:"max_retries"`
			MaxDelaySec int `yaml:"max_delay_sec"`
		} `yaml:"reconnect"`
	} `yaml:"kite"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig는 설정 파일을 읽고 파싱합니다.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 4원칙: 보안 우선 - 환경 변수 오버라이드 지원
	overrideWithEnv(&cfg)

	// 5원칙: 설정 유효성 검사
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity. Credential problems come back
// as *domain.AuthConfigError so callers can treat them as fatal before
// any network activity.
func (c *Config) Validate() error {
	if err := validateCredential("api_key", c.Kite.APIKey); err != nil {
		return err
	}
	if err := validateCredential("access_token", c.Kite.AccessToken); err != nil {
		return err
	}

	if _, err := domain.ParseMode(c.Kite.Mode); err != nil {
		return fmt.Errorf("%w: %q", err, c.Kite.Mode)
	}

	if len(c.Kite.Instruments) == 0 {
		return domain.ErrNoInstruments
	}
	for _, inst := range c.Kite.Instruments {
		if inst.Token == 0 {
			return fmt.Errorf("instrument %q has no token", inst.Symbol)
		}
	}

	if c.Kite.ConnectTimeoutSec <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if c.Kite.Reconnect.MaxDelaySec <= 0 {
		return fmt.Errorf("reconnect max delay must be positive")
	}

	return nil
}

// validateCredential rejects empty secrets and secrets with whitespace or
// control bytes (the usual symptom of a mangled copy-paste)
func validateCredential(field, value string) error {
	if value == "" {
		return &domain.AuthConfigError{Field: field, Err: errors.New("missing value")}
	}
	for _, r := range value {
		if r <= ' ' || r > '~' {
			return &domain.AuthConfigError{Field: field, Err: errors.New("contains non-printable characters")}
		}
	}
	return nil
}

// Tokens returns the configured instrument tokens in declaration order
func (c *Config) Tokens() []uint32 {
	tokens := make([]uint32, 0, len(c.Kite.Instruments))
	for _, inst := range c.Kite.Instruments {
		tokens = append(tokens, inst.Token)
	}
	return tokens
}

// Mode returns the parsed delivery mode. Call after Validate.
func (c *Config) Mode() domain.Mode {
	mode, err := domain.ParseMode(c.Kite.Mode)
	if err != nil {
		return domain.ModeQuote
	}
	return mode
}

// RedactedToken is what gets logged instead of the access token
func (c *Config) RedactedToken() string {
	tok := c.Kite.AccessToken
	if len(tok) <= 4 {
		return "****"
	}
	return tok[:4] + strings.Repeat("*", len(tok)-4)
}

// overrideWithEnv는 환경 변수가 존재할 경우 설정 값을 덮어씁니다.
func overrideWithEnv(cfg *Config) {
	if key := os.Getenv("KITE_API_KEY"); key != "" {
		cfg.Kite.APIKey = key
	}
	if token := os.Getenv("KITE_ACCESS_TOKEN"); token != "" {
		cfg.Kite.AccessToken = token
	}
	if mode := os.Getenv("KITE_TICK_MODE"); mode != "" {
		cfg.Kite.Mode = mode
	}
}
