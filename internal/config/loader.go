package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ARBSCAN_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ARBSCAN_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Kalshi.BaseURL, "ARBSCAN_KALSHI_BASE_URL")
	setStr(&cfg.Kalshi.ApiKey, "ARBSCAN_KALSHI_API_KEY")
	setStr(&cfg.Kalshi.RsaPrivateKeyPath, "ARBSCAN_KALSHI_RSA_PRIVATE_KEY_PATH")
	setBool(&cfg.Kalshi.Enabled, "ARBSCAN_KALSHI_ENABLED")

	setStr(&cfg.Polymarket.GammaHost, "ARBSCAN_POLYMARKET_GAMMA_HOST")
	setBool(&cfg.Polymarket.Enabled, "ARBSCAN_POLYMARKET_ENABLED")

	setStr(&cfg.PredictIt.BaseURL, "ARBSCAN_PREDICTIT_BASE_URL")
	setBool(&cfg.PredictIt.Enabled, "ARBSCAN_PREDICTIT_ENABLED")

	setStr(&cfg.Database.DSN, "ARBSCAN_DATABASE_DSN")
	setStr(&cfg.Database.Host, "ARBSCAN_DATABASE_HOST")
	setInt(&cfg.Database.Port, "ARBSCAN_DATABASE_PORT")
	setStr(&cfg.Database.Database, "ARBSCAN_DATABASE_NAME")
	setStr(&cfg.Database.User, "ARBSCAN_DATABASE_USER")
	setStr(&cfg.Database.Password, "ARBSCAN_DATABASE_PASSWORD")
	setStr(&cfg.Database.SSLMode, "ARBSCAN_DATABASE_SSLMODE")
	setBool(&cfg.Database.RunMigrations, "ARBSCAN_DATABASE_RUN_MIGRATIONS")

	setBool(&cfg.Redis.Enabled, "ARBSCAN_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "ARBSCAN_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ARBSCAN_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ARBSCAN_REDIS_DB")
	setBool(&cfg.Redis.TLSEnabled, "ARBSCAN_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.SnapshotTTL, "ARBSCAN_REDIS_SNAPSHOT_TTL")

	setBool(&cfg.S3.Enabled, "ARBSCAN_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "ARBSCAN_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "ARBSCAN_S3_REGION")
	setStr(&cfg.S3.Bucket, "ARBSCAN_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "ARBSCAN_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "ARBSCAN_S3_SECRET_KEY")

	setDuration(&cfg.Scan.Interval, "ARBSCAN_SCAN_INTERVAL")
	setFloat64(&cfg.Scan.MinRoi, "ARBSCAN_SCAN_MIN_ROI")
	setFloat64(&cfg.Scan.Investment, "ARBSCAN_SCAN_INVESTMENT")
	setStr(&cfg.Scan.OrderType, "ARBSCAN_SCAN_ORDER_TYPE")
	setInt(&cfg.Scan.MaxListingsPerVenue, "ARBSCAN_SCAN_MAX_LISTINGS_PER_VENUE")

	setBool(&cfg.Server.Enabled, "ARBSCAN_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "ARBSCAN_SERVER_PORT")
	setStr(&cfg.Server.APIKey, "ARBSCAN_SERVER_API_KEY")

	setBool(&cfg.Notify.Enabled, "ARBSCAN_NOTIFY_ENABLED")
	setStr(&cfg.Notify.TelegramToken, "ARBSCAN_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ARBSCAN_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhook, "ARBSCAN_NOTIFY_DISCORD_WEBHOOK")
	setFloat64(&cfg.Notify.MinRoi, "ARBSCAN_NOTIFY_MIN_ROI")

	setStr(&cfg.Mode, "ARBSCAN_MODE")
	setStr(&cfg.LogLevel, "ARBSCAN_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
