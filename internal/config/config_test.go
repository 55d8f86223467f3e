package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "HOST", "PORT", "API_BASE_URL", "ANALYZE_TIMEOUT",
		"SOC_RESULTS_PATH", "RESULTS_PROXY_URL", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "HANDOFF_TTL", "GOOGLE_SHEETS_CREDENTIALS_PATH",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultAPIBaseURL, cfg.Backend.BaseURL)
	assert.Equal(t, DefaultAnalyzeTimeout, cfg.Backend.AnalyzeTimeout)
	assert.Equal(t, DefaultDatasetPath, cfg.Results.DatasetPath)
	assert.Equal(t, DefaultHandoffTTL, cfg.Handoff.TTL)
	assert.Empty(t, cfg.Handoff.RedisAddr)
}

func TestLoadFromEnvFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=http://backend:9000\nANALYZE_TIMEOUT=5s\nREDIS_DB=2\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// gotenv.Load does not override variables that are already set, and
	// isolate() set them to empty strings.
	require.NoError(t, os.Unsetenv("API_BASE_URL"))
	require.NoError(t, os.Unsetenv("ANALYZE_TIMEOUT"))
	require.NoError(t, os.Unsetenv("REDIS_DB"))
	t.Cleanup(func() {
		_ = os.Unsetenv("API_BASE_URL")
		_ = os.Unsetenv("ANALYZE_TIMEOUT")
		_ = os.Unsetenv("REDIS_DB")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.AnalyzeTimeout)
	assert.Equal(t, 2, cfg.Handoff.RedisDB)
}

func TestLoadCollectsProblems(t *testing.T) {
	isolate(t)
	t.Setenv("ANALYZE_TIMEOUT", "soon")
	t.Setenv("API_BASE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANALYZE_TIMEOUT")
	assert.Contains(t, err.Error(), "API_BASE_URL")
}
