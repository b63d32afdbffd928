package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "{}")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.neynar.com", cfg.Neynar.BaseURL)
	assert.Equal(t, int64(10000), cfg.Neynar.RequestTimeoutMillis)
	assert.Equal(t, float64(5), cfg.Neynar.RateLimitPerSecond)
	assert.Equal(t, 10, cfg.Neynar.RateBurst)
	assert.Equal(t, "https://api.bankr.bot", cfg.Bankr.BaseURL)
	assert.Equal(t, []string{"base"}, cfg.PortfolioSvc.Networks)
	assert.Equal(t, 10, cfg.PortfolioSvc.DefaultHoldingsLimit)
	assert.Equal(t, 4, cfg.PortfolioSvc.MaxConcurrentFetches)
	assert.Equal(t, 30, cfg.PortfolioSvc.CacheTTLSeconds)
	assert.Equal(t, "data/filters.yml", cfg.Filters.File)
	assert.Equal(t, "/swagger", cfg.Swagger.Path)
}

func TestLoad_FileValuesWin(t *testing.T) {
	t.Setenv("NEYNAR_API_KEY", "")
	path := writeConfig(t, `
server:
  port: "9090"
neynar:
  baseURL: "https://neynar.test"
  apiKey: "from-file"
portfolioService:
  networks: ["base", "ethereum"]
  defaultHoldingsLimit: 5
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://neynar.test", cfg.Neynar.BaseURL)
	assert.Equal(t, "from-file", cfg.Neynar.APIKey)
	assert.Equal(t, []string{"base", "ethereum"}, cfg.PortfolioSvc.Networks)
	assert.Equal(t, 5, cfg.PortfolioSvc.DefaultHoldingsLimit)
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("NEYNAR_API_KEY", "from-env")
	path := writeConfig(t, `
neynar:
  apiKey: "from-file"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Neynar.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	require.Error(t, err)
}
