package oidc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"secops/internal/config"
	"secops/internal/domain"
)

// Authenticator validates OIDC bearer tokens against the configured issuer
// and builds the request principal from the verified claims.
type Authenticator struct {
	issuer   string
	audience string
	clientID string
	jwks     *jwksCache
	parser   *jwt.Parser
	now      func() time.Time
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	now        func() time.Time
}

// WithHTTPClient overrides the client used for discovery and JWKS fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewAuthenticator(cfg config.Config, opts ...Option) (*Authenticator, error) {
	if cfg.OIDCIssuerURL == "" && cfg.OIDCJWKSURL == "" {
		return nil, errors.New("oidc: issuer url or jwks url required")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(cfg.ClockSkew()),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(o.now),
	}
	if cfg.OIDCIssuerURL != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.OIDCIssuerURL))
	}
	if cfg.OIDCAudience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(cfg.OIDCAudience))
	}

	return &Authenticator{
		issuer:   cfg.OIDCIssuerURL,
		audience: cfg.OIDCAudience,
		clientID: cfg.OIDCClientID,
		jwks:     newJWKSCache(cfg.OIDCIssuerURL, cfg.OIDCJWKSURL, o.httpClient, cfg.CacheTTL(), cfg.MaxStale(), o.now),
		parser:   jwt.NewParser(parserOpts...),
		now:      o.now,
	}, nil
}

// Authenticate verifies the given bearer token and returns the principal it
// represents. Failures carry an *AuthError whose Kind identifies the first
// check that failed.
func (a *Authenticator) Authenticate(ctx context.Context, bearerToken string) (domain.Principal, error) {
	if bearerToken == "" {
		return domain.Principal{}, newAuthError(KindInvalidToken, errors.New("empty token"))
	}

	claims := &TokenClaims{}
	_, err := a.parser.ParseWithClaims(bearerToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return a.jwks.Key(ctx, kid)
	})
	if err != nil {
		return domain.Principal{}, classify(err)
	}

	// The library treats sub and iat as optional; we require both.
	if claims.Subject == "" {
		return domain.Principal{}, newAuthError(KindInvalidToken, errors.New("token has no subject"))
	}
	if claims.IssuedAt == nil {
		return domain.Principal{}, newAuthError(KindInvalidToken, errors.New("token has no iat"))
	}

	return a.principal(claims), nil
}

func (a *Authenticator) principal(claims *TokenClaims) domain.Principal {
	return domain.Principal{
		Subject:   claims.Subject,
		Username:  claims.PreferredUsername,
		Email:     claims.Email,
		Issuer:    claims.Issuer,
		Roles:     roleSet(claims, a.clientID),
		RawClaims: claims.Raw(),
	}
}

// classify maps parse and verification errors onto the failure taxonomy.
// Key lookup failures already carry their own *AuthError and pass through.
func classify(err error) *AuthError {
	if ae, ok := AsAuthError(err); ok {
		return ae
	}
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newAuthError(KindInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return newAuthError(KindInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newAuthError(KindExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return newAuthError(KindInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return newAuthError(KindIssuerMismatch, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return newAuthError(KindAudienceMismatch, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return newAuthError(KindInvalidToken, err)
	default:
		return newAuthError(KindInvalidToken, err)
	}
}
