package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_BOOL_ON", "true")
	t.Setenv("TEST_BOOL_OFF", "0")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty")
	t.Setenv("TEST_DUR", "250ms")

	assert.Equal(t, "value", envStr("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envStr("TEST_UNSET", "fallback"))

	assert.True(t, envBool("TEST_BOOL_ON", false))
	assert.False(t, envBool("TEST_BOOL_OFF", true))
	assert.True(t, envBool("TEST_UNSET", true))

	assert.Equal(t, 42, envInt("TEST_INT", 1))
	assert.Equal(t, 1, envInt("TEST_INT_BAD", 1))

	assert.Equal(t, 250*time.Millisecond, envDur("TEST_DUR", time.Second))
	assert.Equal(t, time.Second, envDur("TEST_UNSET", time.Second))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-3")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "TTL is raised to cover several refills")
}
