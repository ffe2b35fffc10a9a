package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"secops/internal/domain"
	"secops/internal/infra/auth/oidc"
	"secops/internal/infra/auth/rbac"
)

// PrincipalFrom returns the authenticated principal set by requireAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(ctxKeyPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// requireAuth authenticates the bearer token and, when roles are given,
// requires the principal to hold at least one of them. A missing or malformed
// Authorization header is rejected before any token work happens.
func (s *Server) requireAuth(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.authInitErr != nil {
			WriteError(c, http.StatusInternalServerError, "AUTH_CONFIG_ERROR", "authentication is not configured")
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			s.metrics.authFailure(rbac.CodeUnauthenticated)
			WriteError(c, http.StatusUnauthorized, rbac.CodeUnauthenticated, "missing bearer token")
			return
		}

		principal, err := s.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			kind := string(oidc.KindInvalidToken)
			if ae, ok := oidc.AsAuthError(err); ok {
				kind = string(ae.Kind)
			}
			s.metrics.authFailure(kind)
			s.log.Warn().
				Str("request_id", RequestID(c)).
				Str("kind", kind).
				Err(err).
				Msg("authentication failed")
			WriteError(c, http.StatusUnauthorized, kind, "invalid or expired token")
			return
		}

		if err := s.authorizer.RequireAny(principal, required); err != nil {
			status := http.StatusForbidden
			code := rbac.CodeInsufficientRole
			if ae, ok := rbac.IsAuthzError(err); ok {
				code = ae.Code
				if ae.Code == rbac.CodeUnauthenticated {
					status = http.StatusUnauthorized
				}
			}
			s.metrics.authFailure(code)
			WriteError(c, status, code, "access denied")
			return
		}

		c.Set(ctxKeyPrincipal, principal)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. The scheme is
// matched case-insensitively; a bare "Bearer" with no token is rejected.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
