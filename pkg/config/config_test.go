package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pricer", cfg.ServiceName)
	assert.Equal(t, 2002, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.HTTP.MaxConnections)
	assert.Equal(t, 2, cfg.Pricing.MaxConcurrentCalcs)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "pricing.batches", cfg.Kafka.Topic)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
service_name = "pricer-test"

[http]
port = 3003

[pricing]
max_concurrent_calcs = 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pricer-test", cfg.ServiceName)
	assert.Equal(t, 3003, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Pricing.MaxConcurrentCalcs)
	// 未覆盖的字段保持默认值
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Pricing.MaxConcurrentCalcs = 0
	require.Error(t, cfg.Validate())

	cfg, _ = Load("")
	cfg.Database.Enabled = true
	cfg.Database.DSN = ""
	require.Error(t, cfg.Validate())

	cfg, _ = Load("")
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = nil
	require.Error(t, cfg.Validate())
}
