// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBSCAN_* environment
// variables.
type Config struct {
	Kalshi     KalshiConfig     `toml:"kalshi"`
	Polymarket PolymarketConfig `toml:"polymarket"`
	PredictIt  PredictItConfig  `toml:"predictit"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	S3         S3Config         `toml:"s3"`
	Scan       ScanConfig       `toml:"scan"`
	Server     ServerConfig     `toml:"server"`
	Notify     NotifyConfig     `toml:"notify"`
	Mode       string           `toml:"mode"`
	LogLevel   string           `toml:"log_level"`
}

// KalshiConfig holds Kalshi API parameters.
type KalshiConfig struct {
	Enabled           bool   `toml:"enabled"`
	BaseURL           string `toml:"base_url"`
	ApiKey            string `toml:"api_key"`
	RsaPrivateKeyPath string `toml:"rsa_private_key_path"`
}

// PolymarketConfig holds Polymarket Gamma API parameters.
type PolymarketConfig struct {
	Enabled   bool   `toml:"enabled"`
	GammaHost string `toml:"gamma_host"`
}

// PredictItConfig holds PredictIt API parameters.
type PredictItConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters for the listing snapshot
// cache.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	// SnapshotTTL bounds how long a venue snapshot stays servable.
	SnapshotTTL time.Duration `toml:"snapshot_ttl"`
}

// S3Config holds S3-compatible object storage parameters for cold-storage
// archival of scan cycles.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	ForcePathStyle bool   `toml:"force_path_style"`
	// ArchiveCron schedules cold-storage archival runs (5-field cron).
	ArchiveCron string `toml:"archive_cron"`
	// RetentionDays is how long opportunity rows stay in the database
	// before an archival run moves them to object storage.
	RetentionDays int `toml:"retention_days"`
}

// ScanConfig holds matching and pricing parameters for the scan pipeline.
type ScanConfig struct {
	// Interval between scan cycles in watch/serve mode.
	Interval time.Duration `toml:"interval"`
	// MinRoi is the minimum price-only ROI percent an opportunity must clear.
	MinRoi float64 `toml:"min_roi"`
	// Investment is the reference budget for fee-aware watchlist figures.
	Investment float64 `toml:"investment"`
	// OrderType is the fee treatment assumed for the fee-aware view
	// ("maker" or "taker").
	OrderType string `toml:"order_type"`
	// MaxListingsPerVenue caps input size per venue before the engine runs.
	MaxListingsPerVenue int `toml:"max_listings_per_venue"`
}

// ServerConfig holds the HTTP API server configuration.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	APIKey      string   `toml:"api_key"` // empty disables authentication
	CORSOrigins []string `toml:"cors_origins"`
}

// NotifyConfig holds notification channel settings.
type NotifyConfig struct {
	Enabled        bool     `toml:"enabled"`
	// Events lists subscribed alert kinds: "opportunity", "scan_error".
	Events         []string `toml:"events"`
	TelegramToken  string   `toml:"telegram_token"`
	TelegramChatID string   `toml:"telegram_chat_id"`
	DiscordWebhook string   `toml:"discord_webhook"`
	// MinRoi suppresses alerts below this net ROI percent.
	MinRoi float64 `toml:"min_roi"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Kalshi: KalshiConfig{
			Enabled: true,
			BaseURL: "https://api.elections.kalshi.com/trade-api/v2",
		},
		Polymarket: PolymarketConfig{
			Enabled:   true,
			GammaHost: "https://gamma-api.polymarket.com",
		},
		PredictIt: PredictItConfig{
			Enabled: true,
			BaseURL: "https://www.predictit.org/api/marketdata",
		},
		Database: DatabaseConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "arbscan",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Enabled:     true,
			Addr:        "localhost:6379",
			PoolSize:    20,
			MaxRetries:  3,
			SnapshotTTL: 5 * time.Minute,
		},
		S3: S3Config{
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "arbscan-archive",
			ForcePathStyle: true,
			ArchiveCron:    "0 3 1 * *",
			RetentionDays:  30,
		},
		Scan: ScanConfig{
			Interval:            5 * time.Minute,
			MinRoi:              2.0,
			Investment:          100,
			OrderType:           "taker",
			MaxListingsPerVenue: 2000,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Notify: NotifyConfig{
			Events: []string{"opportunity"},
			MinRoi: 2.0,
		},
		Mode:     "scan",
		LogLevel: "info",
	}
}

var validModes = map[string]bool{
	"scan":  true,
	"watch": true,
	"serve": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// SlogLevel maps the configured log_level to its slog level. Unknown values
// fall back to info; Validate reports them separately.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the configuration for inconsistencies and returns a single
// error listing everything that is wrong.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, watch, serve)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if !c.Kalshi.Enabled && !c.Polymarket.Enabled && !c.PredictIt.Enabled {
		errs = append(errs, "venues: at least one venue must be enabled")
	}
	if c.Kalshi.Enabled && c.Kalshi.BaseURL == "" {
		errs = append(errs, "kalshi: base_url must not be empty")
	}
	if c.Polymarket.Enabled && c.Polymarket.GammaHost == "" {
		errs = append(errs, "polymarket: gamma_host must not be empty")
	}
	if c.PredictIt.Enabled && c.PredictIt.BaseURL == "" {
		errs = append(errs, "predictit: base_url must not be empty")
	}

	if c.Scan.Interval <= 0 {
		errs = append(errs, "scan: interval must be positive")
	}
	if c.Scan.MinRoi < 0 {
		errs = append(errs, "scan: min_roi must not be negative")
	}
	if c.Scan.Investment <= 0 {
		errs = append(errs, "scan: investment must be positive")
	}
	if ot := strings.ToLower(c.Scan.OrderType); ot != "maker" && ot != "taker" {
		errs = append(errs, fmt.Sprintf("scan: order_type must be maker or taker, got %q", c.Scan.OrderType))
	}
	if c.Scan.MaxListingsPerVenue <= 0 {
		errs = append(errs, "scan: max_listings_per_venue must be positive")
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server: invalid port %d", c.Server.Port))
	}

	// Serve mode re-prices the watchlist from cached snapshots.
	if strings.ToLower(c.Mode) == "serve" && !c.Redis.Enabled {
		errs = append(errs, "redis: must be enabled in serve mode")
	}

	if c.Notify.Enabled {
		hasTelegram := c.Notify.TelegramToken != "" && c.Notify.TelegramChatID != ""
		if !hasTelegram && c.Notify.DiscordWebhook == "" {
			errs = append(errs, "notify: enabled but no channel configured (telegram or discord)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
