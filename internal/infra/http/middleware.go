package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"secops/internal/config"
	"secops/internal/domain"
)

const (
	// HeaderRequestID carries the correlation ID on both request and response.
	HeaderRequestID = "X-Request-Id"

	ctxKeyRequestID = "request_id"
	ctxKeyPrincipal = "principal"
)

// CorrelationID echoes the inbound X-Request-Id or generates one, and makes it
// available to handlers and the access log.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestID returns the correlation ID set by CorrelationID.
func RequestID(c *gin.Context) string {
	return c.GetString(ctxKeyRequestID)
}

// RequestLogger emits one access-log line per request, leveled by status.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := logByStatus(log, status)
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", RequestID(c))
		if p, ok := PrincipalFrom(c); ok {
			evt.Str("subject", p.Subject)
		}
		evt.Msg("request")
	}
}

func logByStatus(log zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}

// CORS allows the configured origins. With no origins configured the
// middleware is a no-op apart from OPTIONS short-circuiting.
func CORS(cfg config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORSOrigins))
	allowAll := false
	for _, o := range cfg.CORSOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			h := c.Writer.Header()
			if allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+HeaderRequestID)
			h.Set("Access-Control-Expose-Headers", HeaderRequestID)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimit applies a fixed window per caller identity: the authenticated
// subject when present, otherwise the client IP.
func RateLimit(limiter domain.RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if p, ok := PrincipalFrom(c); ok {
			key = p.Subject
		}

		decision, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			// Fail open: a limiter outage must not take down the API.
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			WriteError(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}
		c.Next()
	}
}
