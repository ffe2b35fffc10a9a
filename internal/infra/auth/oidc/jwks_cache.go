package oidc

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheTTL     = 5 * time.Minute
	defaultMaxStale     = 15 * time.Minute
	defaultFetchTimeout = 5 * time.Second
)

// jwksCache holds the issuer's RSA signing keys, refreshed wholesale on cache
// miss or TTL expiry. Concurrent misses coalesce into a single upstream fetch,
// and a fetch in flight survives cancellation of the request that started it.
type jwksCache struct {
	issuer       string
	jwksURL      string
	httpClient   *http.Client
	ttl          time.Duration
	maxStale     time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	flight singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func newJWKSCache(issuer, jwksURL string, client *http.Client, ttl, maxStale time.Duration, now func() time.Time) *jwksCache {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if maxStale <= 0 {
		maxStale = defaultMaxStale
	}
	if now == nil {
		now = time.Now
	}
	return &jwksCache{
		issuer:       strings.TrimRight(issuer, "/"),
		jwksURL:      jwksURL,
		httpClient:   client,
		ttl:          ttl,
		maxStale:     maxStale,
		fetchTimeout: defaultFetchTimeout,
		now:          now,
	}
}

// Key returns the verification key for kid, refreshing the cached set when the
// kid is absent or the set has aged past the TTL. A refresh failure falls back
// to the last known set while it is within the stale grace window.
func (c *jwksCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if kid == "" {
		return nil, newAuthError(KindUnknownKey, errors.New("token header has no kid"))
	}

	if key, ok := c.lookupFresh(kid); ok {
		return key, nil
	}

	if err := c.refresh(ctx); err != nil {
		if key, ok := c.lookupStale(kid); ok {
			return key, nil
		}
		return nil, newAuthError(KindKeyFetchFailure, err)
	}

	c.mu.RLock()
	key, ok := c.keys[kid]
	c.mu.RUnlock()
	if !ok {
		return nil, newAuthError(KindUnknownKey, fmt.Errorf("kid %q not in refreshed key set", kid))
	}
	return key, nil
}

func (c *jwksCache) lookupFresh(kid string) (*rsa.PublicKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.now().After(c.fetchedAt.Add(c.ttl)) {
		return nil, false
	}
	key, ok := c.keys[kid]
	return key, ok
}

// lookupStale serves a previously fetched key after a failed refresh, but only
// while the set is younger than ttl+maxStale.
func (c *jwksCache) lookupStale(kid string) (*rsa.PublicKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() || c.now().After(c.fetchedAt.Add(c.ttl).Add(c.maxStale)) {
		return nil, false
	}
	key, ok := c.keys[kid]
	return key, ok
}

// refresh fetches the key set exactly once per concurrent wave of callers. The
// fetch itself runs on a context detached from the caller so an aborted request
// cannot strand the rest of the wave or leave the cache cold.
func (c *jwksCache) refresh(ctx context.Context) error {
	ch := c.flight.DoChan("jwks", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		keys, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.keys = keys
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *jwksCache) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	url, err := c.resolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		if k.Use != "" && k.Use != "sig" {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	return keys, nil
}

// resolveJWKSURL performs OIDC discovery lazily on first fetch when no
// explicit JWKS URL was configured.
func (c *jwksCache) resolveJWKSURL(ctx context.Context) (string, error) {
	c.mu.RLock()
	url := c.jwksURL
	c.mu.RUnlock()
	if url != "" {
		return url, nil
	}
	if c.issuer == "" {
		return "", errors.New("no issuer or jwks url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.issuer+"/.well-known/openid-configuration", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oidc discovery: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oidc discovery: unexpected status %d", resp.StatusCode)
	}

	var doc struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("oidc discovery: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", errors.New("oidc discovery: document has no jwks_uri")
	}

	c.mu.Lock()
	c.jwksURL = doc.JWKSURI
	c.mu.Unlock()
	return doc.JWKSURI, nil
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("jwk %s: decode modulus: %w", k.Kid, err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("jwk %s: decode exponent: %w", k.Kid, err)
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e <= 0 {
		return nil, fmt.Errorf("jwk %s: invalid exponent", k.Kid)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
