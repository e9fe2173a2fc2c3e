// Package config handles loading and validating the daemon configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level daemon configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	Sync        SyncConfig        `yaml:"sync"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// MarketplaceConfig defines the marketplace API settings. Credentials set
// here seed the credential store; they can be replaced at runtime through
// the API without a restart.
type MarketplaceConfig struct {
	BaseURL    string          `yaml:"base_url"`
	SupplierID string          `yaml:"supplier_id"`
	APIKey     string          `yaml:"api_key"`
	APISecret  string          `yaml:"api_secret"`
	Timeout    time.Duration   `yaml:"timeout"`
	UserAgent  string          `yaml:"user_agent"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines marketplace API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// SyncConfig defines sync orchestration settings.
type SyncConfig struct {
	Currency      string        `yaml:"currency"`
	CargoProvider int           `yaml:"cargo_provider_id"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	MaxWait       time.Duration `yaml:"max_wait"`
}

// SchedulerConfig defines the optional periodic jobs. Disabled unless
// enabled explicitly; the reference behavior is operator-triggered only.
type SchedulerConfig struct {
	Enabled         bool          `yaml:"enabled"`
	OrderInterval   time.Duration `yaml:"order_interval"`
	RefdataInterval time.Duration `yaml:"refdata_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyMarketplaceDefaults(&cfg.Marketplace)
	applySyncDefaults(&cfg.Sync)
	applySchedulerDefaults(&cfg.Scheduler)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyMarketplaceDefaults(m *MarketplaceConfig) {
	if m.BaseURL == "" {
		m.BaseURL = "https://api.trendyol.com/sapigw"
	}
	if m.Timeout == 0 {
		m.Timeout = 30 * time.Second
	}
	applyRateLimitDefaults(&m.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 10000
	}
}

func applySyncDefaults(s *SyncConfig) {
	if s.Currency == "" {
		s.Currency = "TRY"
	}
	if s.PollInterval == 0 {
		s.PollInterval = 5 * time.Second
	}
	if s.MaxWait == 0 {
		s.MaxWait = 5 * time.Minute
	}
}

func applySchedulerDefaults(s *SchedulerConfig) {
	if s.OrderInterval == 0 {
		s.OrderInterval = 15 * time.Minute
	}
	if s.RefdataInterval == 0 {
		s.RefdataInterval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	// Credentials are intentionally not required here: they can be
	// configured later through the API, and every marketplace call fails
	// fast with a configuration error until then.

	if cfg.Sync.PollInterval < time.Second {
		errs = append(errs, fmt.Errorf("sync.poll_interval must be at least 1s"))
	}
	if cfg.Sync.MaxWait < cfg.Sync.PollInterval {
		errs = append(errs, fmt.Errorf("sync.max_wait must be >= sync.poll_interval"))
	}
	if cfg.Marketplace.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("marketplace.rate_limit.per_second must be >= 0"))
	}
	if cfg.Scheduler.Enabled && cfg.Scheduler.OrderInterval < time.Minute {
		errs = append(errs, fmt.Errorf("scheduler.order_interval must be at least 1m"))
	}

	return errors.Join(errs...)
}
