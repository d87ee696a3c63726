package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported data providers.
const (
	ProviderNepseAlpha = "nepsealpha"
	ProviderYahoo      = "yahoo"
)

// Config holds all application configuration.
type Config struct {
	Symbol     string `yaml:"symbol"`
	DataSource struct {
		Provider   string        `yaml:"provider"`
		BaseURL    string        `yaml:"base_url"`
		FSK        string        `yaml:"fsk"`
		Resolution string        `yaml:"resolution"`
		YahooRange string        `yaml:"yahoo_range"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Snapshot struct {
		Enabled *bool  `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"snapshot"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file and a .env file next to the working
// directory, then applies environment variable overrides and defaults.
// A missing file at either path is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("SENTIMENT_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("NEPSEALPHA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("NEPSEALPHA_FSK"); v != "" {
		cfg.DataSource.FSK = v
	}
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		cfg.Snapshot.Dir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
		}
		cfg.DataSource.Timeout = d
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = "MERO"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderNepseAlpha
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://www.nepsealpha.com/trading/1/history"
	}
	if cfg.DataSource.Resolution == "" {
		cfg.DataSource.Resolution = "1D"
	}
	if cfg.DataSource.YahooRange == "" {
		cfg.DataSource.YahooRange = "2y"
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.Snapshot.Enabled == nil {
		enabled := true
		cfg.Snapshot.Enabled = &enabled
	}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = "./data_from_api"
	}

	return cfg, nil
}

// SnapshotEnabled reports whether enriched series snapshots are written.
func (c *Config) SnapshotEnabled() bool {
	return c.Snapshot.Enabled == nil || *c.Snapshot.Enabled
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	switch c.DataSource.Provider {
	case ProviderNepseAlpha:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for %s", ProviderNepseAlpha)
		}
		if c.DataSource.Resolution != "1D" {
			return fmt.Errorf("data_source.resolution must be 1D, got %q", c.DataSource.Resolution)
		}
	case ProviderYahoo:
	default:
		return fmt.Errorf("data_source.provider must be %q or %q, got %q", ProviderNepseAlpha, ProviderYahoo, c.DataSource.Provider)
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
