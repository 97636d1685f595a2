package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_MAX_CONNS", "ACCESS_TOKEN_EXPIRY", "ENV", "RATE_LIMIT_PER_MIN", "RUN_MIGRATIONS", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int32(10), cfg.DbMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfig_BadNumbers(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DbHost: "localhost", DbUser: "u", DbName: "mag", JWTSecret: "s", AccessTokenTTL: "1h", Env: "prod", CORSOrigin: "*"}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 2)

	cfg.JWTSecret = ""
	_, err = cfg.Validate()
	assert.Error(t, err)

	cfg.JWTSecret = "s"
	cfg.DbHost = ""
	_, err = cfg.Validate()
	assert.Error(t, err)
}

func TestGetDSNSafe_HidesPassword(t *testing.T) {
	cfg := &Config{DbUser: "u", DbPass: "secret", DbHost: "h", DbPort: "5432", DbName: "mag", DbSSLMode: "disable"}
	assert.Contains(t, cfg.GetDSN(), "secret")
	assert.NotContains(t, cfg.GetDSNSafe(), "secret")
}
