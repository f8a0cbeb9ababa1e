package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("AVAILABILITY_CACHE_TTL", "")
	t.Setenv("DEFAULT_STEP_MINUTES", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.AvailabilityCacheTTL)
	assert.Equal(t, 30, cfg.DefaultStepMinutes)
	assert.Equal(t, 90, cfg.MallMaxDaysAhead)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("AVAILABILITY_CACHE_TTL", "0s")
	t.Setenv("MALL_RATE_PER_MIN", "10")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Zero(t, cfg.AvailabilityCacheTTL)
	assert.Equal(t, 10, cfg.MallRatePerMin)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MALL_MAX_DAYS_AHEAD", "many")
	t.Setenv("AVAILABILITY_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 90, cfg.MallMaxDaysAhead)
	assert.Equal(t, 30*time.Second, cfg.AvailabilityCacheTTL)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://mall.example, ,https://admin.example")

	cfg := Load()

	assert.Equal(t, []string{"https://mall.example", "https://admin.example"}, cfg.CORSOrigins)
}
