package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "2312", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.Server.ConnectionTimeout)
	assert.False(t, cfg.Server.EnableTimeouts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEDUSA_SERVER_PORT", "6000")
	t.Setenv("MEDUSA_SERVER_MAX_CONNECTIONS", "7")
	t.Setenv("MEDUSA_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "6000", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Server.MaxConnections)
	assert.Equal(t, "debug", cfg.Log.Level)
}
