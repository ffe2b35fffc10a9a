package oidc

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// RealmAccess carries realm-level roles as issued by the identity provider.
type RealmAccess struct {
	Roles []string `json:"roles"`
}

// ClientAccess carries the roles granted for a single client under
// resource_access.
type ClientAccess struct {
	Roles []string `json:"roles"`
}

// TokenClaims is the typed claim set validated from an access token. The raw
// claim map is retained alongside the typed fields so principals can expose
// claims we do not model.
type TokenClaims struct {
	jwt.RegisteredClaims

	PreferredUsername string                  `json:"preferred_username"`
	Email             string                  `json:"email"`
	RealmAccess       *RealmAccess            `json:"realm_access"`
	ResourceAccess    map[string]ClientAccess `json:"resource_access"`

	raw map[string]any
}

func (c *TokenClaims) UnmarshalJSON(data []byte) error {
	type alias TokenClaims
	var typed alias
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = TokenClaims(typed)
	c.raw = raw
	return nil
}

// Raw returns the full claim map as decoded from the token payload.
func (c *TokenClaims) Raw() map[string]any { return c.raw }

// roleSet unions roles from realm_access and resource_access[clientID],
// preserving case and first-seen order while dropping duplicates.
func roleSet(claims *TokenClaims, clientID string) []string {
	seen := make(map[string]struct{})
	var roles []string
	add := func(rs []string) {
		for _, r := range rs {
			if r == "" {
				continue
			}
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			roles = append(roles, r)
		}
	}
	if claims.RealmAccess != nil {
		add(claims.RealmAccess.Roles)
	}
	if clientID != "" {
		if client, ok := claims.ResourceAccess[clientID]; ok {
			add(client.Roles)
		}
	}
	return roles
}
