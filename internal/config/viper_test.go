package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig(t)

	assert.NoError(t, validateConfig(cfg))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "USD", cfg.Ledger.Currency)
	assert.Equal(t, "database/ledger.csv", cfg.Ledger.File)
	assert.False(t, cfg.AI.Enabled)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Log.Level = "chatty"
	assert.ErrorContains(t, validateConfig(cfg), "log level")

	cfg = defaultConfig(t)
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, validateConfig(cfg), "log format")

	cfg = defaultConfig(t)
	cfg.Ledger.Currency = "DOUBLOONS"
	assert.ErrorContains(t, validateConfig(cfg), "currency")

	cfg = defaultConfig(t)
	cfg.AI.Enabled = true
	assert.ErrorContains(t, validateConfig(cfg), "GEMINI_API_KEY")

	cfg.AI.APIKey = "secret"
	assert.NoError(t, validateConfig(cfg))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "not-a-level"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel(), "bad level falls back to info")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
