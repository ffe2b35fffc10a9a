package oidc

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"secops/internal/config"
)

const (
	testIssuer   = "https://idp.example.com/realms/secops"
	testAudience = "secops-api"
	testClientID = "secops-api"
	testKid      = "kid-1"
)

func testConfig() config.Config {
	return config.Config{
		OIDCIssuerURL:     testIssuer,
		OIDCAudience:      testAudience,
		OIDCClientID:      testClientID,
		OIDCJWKSURL:       "https://idp.example.com/jwks",
		OIDCCacheTTLSecs:  300,
		OIDCMaxStaleSecs:  900,
		OIDCClockSkewSecs: 60,
	}
}

func testAuthenticator(t *testing.T, jwks []byte, now time.Time) *Authenticator {
	t.Helper()
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(jwks)),
		}, nil
	})}
	a, err := NewAuthenticator(testConfig(), WithHTTPClient(client), WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	return a
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	ae, ok := AsAuthError(err)
	if !ok {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if ae.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, ae.Kind, err)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	key := testKey(t)
	now := time.Now()
	a := testAuthenticator(t, buildJWKS(t, testKid, &key.PublicKey), now)

	claims := baseClaims(testIssuer, testAudience, now)
	claims["preferred_username"] = "alice"
	claims["email"] = "alice@example.com"
	claims["realm_access"] = map[string]any{"roles": []string{"viewer"}}

	p, err := a.Authenticate(context.Background(), signToken(t, key, testKid, claims))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Subject != "user-1" || p.Username != "alice" || p.Email != "alice@example.com" {
		t.Fatalf("unexpected principal %+v", p)
	}
	if !p.HasRole("viewer") {
		t.Fatalf("expected viewer role, got %v", p.Roles)
	}
	if p.RawClaims["preferred_username"] != "alice" {
		t.Fatal("raw claims not retained")
	}
}

func TestAuthenticateFailureKinds(t *testing.T) {
	key := testKey(t)
	otherKey := testKey(t)
	now := time.Now()
	a := testAuthenticator(t, buildJWKS(t, testKid, &key.PublicKey), now)

	cases := []struct {
		name  string
		token func(t *testing.T) string
		kind  Kind
	}{
		{
			name:  "empty token",
			token: func(t *testing.T) string { return "" },
			kind:  KindInvalidToken,
		},
		{
			name:  "malformed token",
			token: func(t *testing.T) string { return "not.a.jwt" },
			kind:  KindInvalidToken,
		},
		{
			name: "unknown kid",
			token: func(t *testing.T) string {
				return signToken(t, key, "rotated-kid", baseClaims(testIssuer, testAudience, now))
			},
			kind: KindUnknownKey,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				return signToken(t, otherKey, testKid, baseClaims(testIssuer, testAudience, now))
			},
			kind: KindInvalidSignature,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				claims := baseClaims(testIssuer, testAudience, now)
				claims["iat"] = now.Add(-2 * time.Hour).Unix()
				claims["exp"] = now.Add(-10 * time.Minute).Unix()
				return signToken(t, key, testKid, claims)
			},
			kind: KindExpiredToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				claims := baseClaims(testIssuer, testAudience, now)
				claims["nbf"] = now.Add(10 * time.Minute).Unix()
				return signToken(t, key, testKid, claims)
			},
			kind: KindInvalidToken,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				return signToken(t, key, testKid, baseClaims("https://evil.example.com", testAudience, now))
			},
			kind: KindIssuerMismatch,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				return signToken(t, key, testKid, baseClaims(testIssuer, "other-api", now))
			},
			kind: KindAudienceMismatch,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				claims := baseClaims(testIssuer, testAudience, now)
				delete(claims, "sub")
				return signToken(t, key, testKid, claims)
			},
			kind: KindInvalidToken,
		},
		{
			name: "missing iat",
			token: func(t *testing.T) string {
				claims := baseClaims(testIssuer, testAudience, now)
				delete(claims, "iat")
				return signToken(t, key, testKid, claims)
			},
			kind: KindInvalidToken,
		},
		{
			name: "missing exp",
			token: func(t *testing.T) string {
				claims := baseClaims(testIssuer, testAudience, now)
				delete(claims, "exp")
				return signToken(t, key, testKid, claims)
			},
			kind: KindInvalidToken,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), tc.token(t))
			wantKind(t, err, tc.kind)
		})
	}
}

func TestAuthenticateClockSkew(t *testing.T) {
	key := testKey(t)
	now := time.Now()
	a := testAuthenticator(t, buildJWKS(t, testKid, &key.PublicKey), now)

	// Expired 30s ago, within the 60s leeway.
	claims := baseClaims(testIssuer, testAudience, now)
	claims["exp"] = now.Add(-30 * time.Second).Unix()
	if _, err := a.Authenticate(context.Background(), signToken(t, key, testKid, claims)); err != nil {
		t.Fatalf("expected token within leeway to pass, got %v", err)
	}
}

func TestAuthenticateAudienceList(t *testing.T) {
	key := testKey(t)
	now := time.Now()
	a := testAuthenticator(t, buildJWKS(t, testKid, &key.PublicKey), now)

	claims := baseClaims(testIssuer, testAudience, now)
	claims["aud"] = []string{"account", testAudience}
	if _, err := a.Authenticate(context.Background(), signToken(t, key, testKid, claims)); err != nil {
		t.Fatalf("expected list audience containing ours to pass, got %v", err)
	}
}

func TestRoleExtraction(t *testing.T) {
	key := testKey(t)
	now := time.Now()
	a := testAuthenticator(t, buildJWKS(t, testKid, &key.PublicKey), now)

	cases := []struct {
		name   string
		claims func(c jwt.MapClaims)
		want   []string
	}{
		{
			name: "realm only",
			claims: func(c jwt.MapClaims) {
				c["realm_access"] = map[string]any{"roles": []string{"admin", "viewer"}}
			},
			want: []string{"admin", "viewer"},
		},
		{
			name: "client only",
			claims: func(c jwt.MapClaims) {
				c["resource_access"] = map[string]any{
					testClientID: map[string]any{"roles": []string{"editor"}},
				}
			},
			want: []string{"editor"},
		},
		{
			name: "union deduplicates",
			claims: func(c jwt.MapClaims) {
				c["realm_access"] = map[string]any{"roles": []string{"viewer", "admin"}}
				c["resource_access"] = map[string]any{
					testClientID:   map[string]any{"roles": []string{"admin", "editor"}},
					"other-client": map[string]any{"roles": []string{"ignored"}},
				}
			},
			want: []string{"viewer", "admin", "editor"},
		},
		{
			name:   "no role claims",
			claims: func(c jwt.MapClaims) {},
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := baseClaims(testIssuer, testAudience, now)
			tc.claims(claims)
			p, err := a.Authenticate(context.Background(), signToken(t, key, testKid, claims))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(p.Roles) != len(tc.want) {
				t.Fatalf("expected roles %v, got %v", tc.want, p.Roles)
			}
			for i := range tc.want {
				if p.Roles[i] != tc.want[i] {
					t.Fatalf("expected roles %v, got %v", tc.want, p.Roles)
				}
			}
		})
	}
}
