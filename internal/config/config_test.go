package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/marketsync/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.trendyol.com/sapigw", cfg.Marketplace.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Marketplace.Timeout)
	assert.InDelta(t, 5.0, cfg.Marketplace.RateLimit.PerSecond, 0.001)
	assert.Equal(t, 10, cfg.Marketplace.RateLimit.Burst)
	assert.EqualValues(t, 10000, cfg.Marketplace.RateLimit.DailyLimit)
	assert.Equal(t, "TRY", cfg.Sync.Currency)
	assert.Equal(t, 5*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.MaxWait)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
marketplace:
  base_url: https://stageapi.example.com/sapigw
  supplier_id: "1234"
  api_key: key
  api_secret: secret
  timeout: 10s
  rate_limit:
    per_second: 2.5
    burst: 5
    daily_limit: 500
sync:
  currency: USD
  cargo_provider_id: 17
  poll_interval: 2s
  max_wait: 1m
scheduler:
  enabled: true
  order_interval: 30m
  refdata_interval: 12h
logging:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "1234", cfg.Marketplace.SupplierID)
	assert.Equal(t, 10*time.Second, cfg.Marketplace.Timeout)
	assert.InDelta(t, 2.5, cfg.Marketplace.RateLimit.PerSecond, 0.001)
	assert.Equal(t, "USD", cfg.Sync.Currency)
	assert.Equal(t, 17, cfg.Sync.CargoProvider)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.OrderInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_TY_KEY", "env-key")
	t.Setenv("TEST_TY_SECRET", "env-secret")

	path := writeConfig(t, `
marketplace:
  supplier_id: "1234"
  api_key: ${TEST_TY_KEY}
  api_secret: ${TEST_TY_SECRET}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Marketplace.APIKey)
	assert.Equal(t, "env-secret", cfg.Marketplace.APISecret)
}

// Missing credentials are not a load error; they can arrive later through
// the API.
func TestLoad_NoCredentials(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8081\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Marketplace.APIKey)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantContain string
	}{
		{
			name:        "poll interval too small",
			yaml:        "sync:\n  poll_interval: 100ms\n",
			wantContain: "poll_interval",
		},
		{
			name:        "max wait below poll interval",
			yaml:        "sync:\n  poll_interval: 10s\n  max_wait: 5s\n",
			wantContain: "max_wait",
		},
		{
			name:        "scheduler interval too small",
			yaml:        "scheduler:\n  enabled: true\n  order_interval: 10s\n",
			wantContain: "order_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)

			_, err := config.Load(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContain)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
}
