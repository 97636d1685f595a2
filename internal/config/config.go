package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPass     string
	DbName     string
	DbSSLMode  string
	DbMaxConns int32

	JWTSecret      string
	AccessTokenTTL string

	Log      string
	LogLevel string
	Env      string // dev|prod

	CORSOrigin string

	RedisAddr       string
	RedisPassword   string
	RateLimitPerMin int

	RunMigrations bool
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	maxConns, err := strconv.Atoi(def(os.Getenv("DB_MAX_CONNS"), "10"))
	if err != nil || maxConns < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %q", os.Getenv("DB_MAX_CONNS"))
	}
	rateLimit, err := strconv.Atoi(def(os.Getenv("RATE_LIMIT_PER_MIN"), "30"))
	if err != nil || rateLimit < 1 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MIN: %q", os.Getenv("RATE_LIMIT_PER_MIN"))
	}

	cfg := &Config{
		Port:       def(os.Getenv("PORT"), "8080"),
		DbHost:     os.Getenv("DB_HOST"),
		DbPort:     def(os.Getenv("DB_PORT"), "5432"),
		DbUser:     os.Getenv("DB_USER"),
		DbPass:     os.Getenv("DB_PASSWORD"),
		DbName:     os.Getenv("DB_NAME"),
		DbSSLMode:  def(os.Getenv("DB_SSLMODE"), "disable"),
		DbMaxConns: int32(maxConns),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "24h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		CORSOrigin: def(os.Getenv("CORS_ORIGIN"), "*"),

		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RateLimitPerMin: rateLimit,

		RunMigrations: def(os.Getenv("RUN_MIGRATIONS"), "true") == "true",
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	if _, err := time.ParseDuration(c.AccessTokenTTL); err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRY: %w", err)
	}

	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is empty, rate limiting is disabled")
	}

	if c.CORSOrigin == "*" && c.IsProd() {
		warnings = append(warnings, "CORS_ORIGIN allows any origin in prod")
	}

	return warnings, nil
}

func (c *Config) IsProd() bool { return c.Env == "prod" }

// TokenTTL: срок жизни access-токена; Validate уже проверил формат.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetDSN возвращает DSN с паролем.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe возвращает DSN без пароля, для логов.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
