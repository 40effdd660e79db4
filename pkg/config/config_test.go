package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "reports", cfg.Batch.OutputDir)
	assert.Equal(t, "0 45 8 * * 1-5", cfg.Batch.MorningSchedule)
	assert.Equal(t, "0 40 15 * * 1-5", cfg.Batch.AfternoonSchedule)
	assert.Equal(t, 2.0, cfg.KRX.RequestsPerSec)
	assert.Equal(t, 30*time.Second, cfg.KRX.Timeout)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("KRX_REQUESTS_PER_SEC", "0.5")
	t.Setenv("BATCH_OUTPUT_DIR", "/var/data/reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 0.5, cfg.KRX.RequestsPerSec)
	assert.Equal(t, "/var/data/reports", cfg.Batch.OutputDir)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ENV", "qa")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV must be one of")
}

func TestLoad_InvalidRate(t *testing.T) {
	t.Setenv("KRX_REQUESTS_PER_SEC", "-1")

	_, err := Load()
	require.Error(t, err)
}
