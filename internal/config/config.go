package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Market struct {
		Source         string `yaml:"source"` // "coingecko" or "mock"
		BaseURL        string `yaml:"base_url"`
		UserAgent      string `yaml:"user_agent"`
		TopLimit       int    `yaml:"top_limit"`
		HistoryDays    int    `yaml:"history_days"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"market"`
	Chart struct {
		Color      string `yaml:"color"`
		TimeFormat string `yaml:"time_format"`
		TimeTitle  string `yaml:"time_title"`
		PriceTitle string `yaml:"price_title"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Market.TimeoutSeconds) * time.Second
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file yields the defaults.
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

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_SOURCE"); v != "" {
		cfg.Market.Source = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Market.UserAgent = v
	}
	if v := os.Getenv("TOP_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TOP_LIMIT: %w", err)
		}
		cfg.Market.TopLimit = n
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HISTORY_DAYS: %w", err)
		}
		cfg.Market.HistoryDays = n
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Market.Source == "" {
		cfg.Market.Source = "coingecko"
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Market.UserAgent == "" {
		cfg.Market.UserAgent = "CryptoViewerApp/1.0"
	}
	if cfg.Market.TopLimit == 0 {
		cfg.Market.TopLimit = 10
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 7
	}
	if cfg.Market.TimeoutSeconds == 0 {
		cfg.Market.TimeoutSeconds = 30
	}
	if cfg.Chart.Color == "" {
		cfg.Chart.Color = "steelblue"
	}
	if cfg.Chart.TimeFormat == "" {
		cfg.Chart.TimeFormat = "01-02"
	}
	if cfg.Chart.TimeTitle == "" {
		cfg.Chart.TimeTitle = "Date"
	}
	if cfg.Chart.PriceTitle == "" {
		cfg.Chart.PriceTitle = "Price (USD)"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Market.Source != "coingecko" && c.Market.Source != "mock" {
		return fmt.Errorf("market.source must be coingecko or mock, got %q", c.Market.Source)
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Market.TopLimit <= 0 {
		return fmt.Errorf("market.top_limit must be positive")
	}
	if c.Market.HistoryDays <= 0 {
		return fmt.Errorf("market.history_days must be positive")
	}
	if c.Market.TimeoutSeconds <= 0 {
		return fmt.Errorf("market.timeout_seconds must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
