package domain

import "context"

// Principal is the authenticated identity derived from a validated access
// token. It is created once per request and never shared across requests.
type Principal struct {
	Subject   string
	Username  string
	Email     string
	Issuer    string
	Roles     []string
	RawClaims map[string]any
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

// Authorizer decides whether a principal may reach a route that requires at
// least one of the given roles. An empty required list admits any
// authenticated principal.
type Authorizer interface {
	RequireAny(principal Principal, required []string) error
}
