package http

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"secops/internal/domain"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": s.cfg.AppName,
		"message": "ok",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    s.cfg.AppName,
		"version": s.cfg.AppVersion,
	})
}

func (s *Server) handleProtected(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"subject":  p.Subject,
		"username": p.Username,
		"email":    p.Email,
		"roles":    sortedRoles(p),
	})
}

func (s *Server) handleProtectedAdmin(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"subject": p.Subject,
		"roles":   sortedRoles(p),
		"admin":   true,
	})
}

// sortedRoles copies the principal's roles in sorted order so the echo is
// deterministic regardless of claim order in the token.
func sortedRoles(p domain.Principal) []string {
	roles := make([]string, len(p.Roles))
	copy(roles, p.Roles)
	sort.Strings(roles)
	return roles
}

// writeDomainError maps service and repository errors onto the error envelope.
func (s *Server) writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		WriteError(c, http.StatusConflict, "CONFLICT", "resource already exists")
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteError(c, http.StatusForbidden, "INSUFFICIENT_ROLE", "access denied")
	case errors.Is(err, domain.ErrUnavailable):
		WriteError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "backing store unavailable")
	default:
		s.log.Error().Str("request_id", RequestID(c)).Err(err).Msg("request failed")
		WriteError(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
