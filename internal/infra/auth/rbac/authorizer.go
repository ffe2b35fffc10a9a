package rbac

import (
	"errors"
	"fmt"
	"strings"

	"secops/internal/domain"
)

const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeInsufficientRole = "INSUFFICIENT_ROLE"
)

// AuthzError is an authorization decision with a stable code the HTTP layer
// maps to a status line.
type AuthzError struct {
	Code string
	Err  error
}

func (e *AuthzError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *AuthzError) Unwrap() error { return e.Err }

func IsAuthzError(err error) (*AuthzError, bool) {
	var ae *AuthzError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Authorizer grants access when the principal holds at least one of the
// required roles. An empty requirement means any authenticated principal.
type Authorizer struct{}

func New() *Authorizer { return &Authorizer{} }

func (a *Authorizer) RequireAny(p domain.Principal, required []string) error {
	if p.Subject == "" {
		return &AuthzError{Code: CodeUnauthenticated, Err: errors.New("no authenticated principal")}
	}
	if len(required) == 0 {
		return nil
	}
	for _, r := range required {
		if p.HasRole(r) {
			return nil
		}
	}
	return &AuthzError{
		Code: CodeInsufficientRole,
		Err:  fmt.Errorf("requires one of [%s]", strings.Join(required, ", ")),
	}
}
