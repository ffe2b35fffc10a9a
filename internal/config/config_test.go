package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.OIDCCacheTTLSecs != 300 || cfg.OIDCMaxStaleSecs != 900 {
		t.Fatalf("unexpected cache defaults: ttl=%d stale=%d", cfg.OIDCCacheTTLSecs, cfg.OIDCMaxStaleSecs)
	}
	if cfg.ClockSkew() != 60*time.Second {
		t.Fatalf("expected 60s skew, got %s", cfg.ClockSkew())
	}
	if cfg.RateLimitRequests != 0 {
		t.Fatalf("rate limiting should be off by default, got %d", cfg.RateLimitRequests)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("OIDC_ISSUER_URL", "https://idp.example.com/realms/secops")
	t.Setenv("OIDC_CACHE_TTL_SECONDS", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTPAddr)
	}
	if cfg.OIDCIssuerURL != "https://idp.example.com/realms/secops" {
		t.Fatalf("unexpected issuer %q", cfg.OIDCIssuerURL)
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", cfg.CacheTTL())
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestEnvIntDefaultRejectsGarbage(t *testing.T) {
	t.Setenv("OIDC_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("OIDC_MAX_STALE_SECONDS", "-5")
	cfg := FromEnv()
	if cfg.OIDCCacheTTLSecs != 300 {
		t.Fatalf("expected default ttl on parse failure, got %d", cfg.OIDCCacheTTLSecs)
	}
	if cfg.OIDCMaxStaleSecs != 900 {
		t.Fatalf("expected default stale on negative value, got %d", cfg.OIDCMaxStaleSecs)
	}
}
