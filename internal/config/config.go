package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at process start; changing any value requires a restart.
type Config struct {
	AppName    string
	AppVersion string
	HTTPAddr   string
	LogLevel   string

	DatabaseURL string
	CORSOrigins []string

	OIDCIssuerURL     string
	OIDCAudience      string
	OIDCClientID      string
	OIDCJWKSURL       string
	OIDCCacheTTLSecs  int
	OIDCMaxStaleSecs  int
	OIDCClockSkewSecs int

	RateLimitRequests      int
	RateLimitWindowSeconds int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	return Config{
		AppName:                envDefault("APP_NAME", "secops-api"),
		AppVersion:             envDefault("APP_VERSION", "0.1.0"),
		HTTPAddr:               envDefault("HTTP_ADDR", ":8080"),
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		CORSOrigins:            envCSV("CORS_ORIGINS"),
		OIDCIssuerURL:          os.Getenv("OIDC_ISSUER_URL"),
		OIDCAudience:           os.Getenv("OIDC_AUDIENCE"),
		OIDCClientID:           os.Getenv("OIDC_CLIENT_ID"),
		OIDCJWKSURL:            os.Getenv("OIDC_JWKS_URL"),
		OIDCCacheTTLSecs:       envIntDefault("OIDC_CACHE_TTL_SECONDS", 300),
		OIDCMaxStaleSecs:       envIntDefault("OIDC_MAX_STALE_SECONDS", 900),
		OIDCClockSkewSecs:      envIntDefault("OIDC_CLOCK_SKEW_SECONDS", 60),
		RateLimitRequests:      envIntDefault("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.OIDCCacheTTLSecs) * time.Second
}

func (c Config) MaxStale() time.Duration {
	return time.Duration(c.OIDCMaxStaleSecs) * time.Second
}

func (c Config) ClockSkew() time.Duration {
	return time.Duration(c.OIDCClockSkewSecs) * time.Second
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func envCSV(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
