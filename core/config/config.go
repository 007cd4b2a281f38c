package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// DropPendingUpdates discards updates queued while the bot was down.
	DropPendingUpdates bool `yaml:"drop_pending_updates" envconfig:"TELEGRAM_DROP_PENDING_UPDATES"`
}

// CatalogConfig points at the tabular listings source.
type CatalogConfig struct {
	ListingsFile string `yaml:"listings_file" envconfig:"LISTINGS_FILE"`
}

// StorageConfig controls where the favorites database lives.
// On the Render platform (RENDER env set) the default switches to the
// persistent disk mount; the parent directory is created on open.
type StorageConfig struct {
	Path   string `yaml:"path" envconfig:"FAVORITES_DB"`
	Render string `yaml:"-" envconfig:"RENDER"`
}

// HealthConfig configures the liveness/metrics HTTP listener.
type HealthConfig struct {
	Listen string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
	Port   int    `yaml:"port" envconfig:"PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// RateLimitConfig holds settings for per-user rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	Burst          int      `yaml:"burst" envconfig:"RATE_LIMIT_BURST"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates all application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Storage   StorageConfig   `yaml:"storage"`
	Health    HealthConfig    `yaml:"health"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

const (
	defaultListingsFile = "listings_with_url.csv"
	defaultDBFile       = "favorites.db"
	renderDataDir       = "/var/data"
	defaultHealthPort   = 5000
)

// Load reads configuration from a YAML file and environment variables.
// A missing file is tolerated; env vars alone can fully configure the bot.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only configuration
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults. The bot token is
// the only hard requirement; the process refuses to start without it.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required (BOT_TOKEN)")
	}
	if cfg.Telegram.LongPollTimeoutSeconds < 0 {
		return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
	}

	if strings.TrimSpace(cfg.Catalog.ListingsFile) == "" {
		cfg.Catalog.ListingsFile = defaultListingsFile
	}

	if strings.TrimSpace(cfg.Storage.Path) == "" {
		if cfg.Storage.Render != "" {
			cfg.Storage.Path = filepath.Join(renderDataDir, defaultDBFile)
		} else {
			cfg.Storage.Path = defaultDBFile
		}
	}

	if cfg.Health.Port <= 0 {
		cfg.Health.Port = defaultHealthPort
	}

	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 1
	}
	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
