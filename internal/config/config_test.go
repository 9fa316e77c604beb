package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "DATABASE_PATH", "DECKS", "START_BALANCE", "DEFAULT_BET",
		"MIN_BET", "MAX_BET", "STRICT_MODE", "LOG_LEVEL", "SESSION_TTL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.BotToken)
	assert.Equal(t, "./blackjack.db", cfg.DatabasePath)
	assert.Equal(t, 6, cfg.Decks)
	assert.Equal(t, 1000, cfg.StartBalance)
	assert.Equal(t, 100, cfg.DefaultBet)
	assert.Equal(t, 2.5, cfg.BlackjackPays)
	assert.False(t, cfg.StrictMode)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("DECKS", "2")
	t.Setenv("MIN_BET", "5")
	t.Setenv("DEFAULT_BET", "50")
	t.Setenv("STRICT_MODE", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, 2, cfg.Decks)
	assert.Equal(t, 5, cfg.MinBet)
	assert.Equal(t, 50, cfg.DefaultBet)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DECKS":       "many",
		"STRICT_MODE": "maybe",
		"LOG_LEVEL":   "loud",
		"SESSION_TTL": "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	base := Config{Decks: 1, MinBet: 10, MaxBet: 100, DefaultBet: 20, SessionTTL: time.Minute}
	require.NoError(t, base.Validate())

	bad := []func(c *Config){
		func(c *Config) { c.Decks = 0 },
		func(c *Config) { c.MinBet = 0 },
		func(c *Config) { c.MaxBet = 5 },
		func(c *Config) { c.DefaultBet = 500 },
		func(c *Config) { c.StartBalance = -1 },
		func(c *Config) { c.SessionTTL = 0 },
	}
	for i, mutate := range bad {
		c := base
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
