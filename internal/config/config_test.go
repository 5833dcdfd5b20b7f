package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "turbo"
	cfg.Scan.Investment = 0
	cfg.Scan.OrderType = "instant"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
	assert.Contains(t, err.Error(), "investment must be positive")
	assert.Contains(t, err.Error(), "order_type")
}

func TestValidate_RequiresOneVenue(t *testing.T) {
	cfg := Defaults()
	cfg.Kalshi.Enabled = false
	cfg.Polymarket.Enabled = false
	cfg.PredictIt.Enabled = false

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one venue")
}

func TestLoad_TomlAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "watch"

[scan]
min_roi = 7.5
`), 0o600))

	t.Setenv("ARBSCAN_SCAN_MIN_ROI", "9.25")
	t.Setenv("ARBSCAN_REDIS_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "watch", cfg.Mode)
	// Env wins over the file.
	assert.Equal(t, 9.25, cfg.Scan.MinRoi)
	assert.False(t, cfg.Redis.Enabled)
	// Untouched fields keep defaults.
	assert.Equal(t, "https://gamma-api.polymarket.com", cfg.Polymarket.GammaHost)
}

func TestRedactedConfig_MasksSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.Database.Password = "hunter2"
	cfg.Notify.TelegramToken = "123:abc"

	red := RedactedConfig(&cfg)
	assert.Equal(t, "***", red.Database.Password)
	assert.Equal(t, "***", red.Notify.TelegramToken)
	// The original is untouched.
	assert.Equal(t, "hunter2", cfg.Database.Password)
}
