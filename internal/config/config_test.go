package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "invoices.db", cfg.Store.Path)
	assert.Equal(t, 2.0, cfg.Dedup.TolerancePercent)
	assert.Equal(t, 3, cfg.Dedup.RecurringWindowMonths)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()

	t.Setenv("INVOICE_LOG_LEVEL", "debug")
	t.Setenv("INVOICE_DEDUP_TOLERANCE_PERCENT", "5")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5.0, cfg.Dedup.TolerancePercent)
}

func TestInitializeConfigFile(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	content := []byte("log:\n  level: warn\nstore:\n  path: custom.db\n")
	require.NoError(t, os.WriteFile("config.yaml", content, 0644))

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "custom.db", cfg.Store.Path)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative tolerance", func(c *Config) { c.Dedup.TolerancePercent = -1 }},
		{"zero window", func(c *Config) { c.Dedup.RecurringWindowMonths = 0 }},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tc.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func validBaseConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Store.Path = "invoices.db"
	cfg.Dedup.TolerancePercent = 2.0
	cfg.Dedup.RecurringWindowMonths = 3
	cfg.Batch.Workers = 4
	return cfg
}
