package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "database/ledgerstage.db", cfg.Store.Path)
	assert.Equal(t, "categories.yaml", cfg.Categories.File)
	assert.Equal(t, 4, cfg.Import.Workers)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("LEDGERSTAGE_LOG_LEVEL", "debug")
	t.Setenv("LEDGERSTAGE_CSV_DELIMITER", ";")
	t.Setenv("LEDGERSTAGE_IMPORT_WORKERS", "8")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, 8, cfg.Import.Workers)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ","
		cfg.Import.Workers = 4
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"JSON format accepted", func(c *Config) { c.Log.Format = "json" }, ""},
		{"Bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"Bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"Multi-char delimiter", func(c *Config) { c.CSV.Delimiter = ",," }, "single character"},
		{"Empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "single character"},
		{"Zero workers", func(c *Config) { c.Import.Workers = 0 }, "between 1 and 64"},
		{"Too many workers", func(c *Config) { c.Import.Workers = 65 }, "between 1 and 64"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "nonsense"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
