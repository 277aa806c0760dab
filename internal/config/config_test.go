package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"TICK_INTERVAL", "SEARCH_BUDGET", "BOT_DIFFICULTY", "HUMAN_COLOR", "MESSAGE_LIMIT", "MAX_EVENTS", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, time.Second, cfg.SearchBudget)
	assert.Equal(t, "hard", cfg.BotDifficulty)
	assert.Equal(t, "first", cfg.HumanColor)
	assert.Equal(t, 10, cfg.MessageLimit)
	assert.Same(t, cfg, AppConfig)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "40")
	t.Setenv("SEARCH_BUDGET", "2s")
	t.Setenv("BOT_DIFFICULTY", "Easy")
	t.Setenv("FRONTEND_URL", "http://example.test")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test, ,http://b.test")
	t.Setenv("RELEASE_MODE", "true")

	cfg := LoadConfig()
	assert.Equal(t, 40*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.SearchBudget)
	assert.Equal(t, "easy", cfg.BotDifficulty)
	assert.Equal(t, []string{"http://example.test", "http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ReleaseMode)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_BOOL", "maybe")

	assert.Equal(t, 7, GetEnvAsInt("X_INT", 7))
	assert.Equal(t, time.Minute, GetEnvAsDuration("X_DUR", time.Minute))
	assert.True(t, GetEnvAsBool("X_BOOL", true))
}

func TestValidate(t *testing.T) {
	base := Config{TickInterval: time.Millisecond, SearchBudget: time.Second, MessageLimit: 10, MaxEvents: 64}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"zero tick":     func(c *Config) { c.TickInterval = 0 },
		"zero budget":   func(c *Config) { c.SearchBudget = 0 },
		"no messages":   func(c *Config) { c.MessageLimit = 0 },
		"small history": func(c *Config) { c.MaxEvents = 5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
