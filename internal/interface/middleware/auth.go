package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/pkg/helpers"
	"github.com/realworld-go/conduit/pkg/response"
)

// CtxUserIDKey is the Gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

// TokenFromHeader extracts the raw JWT from the Authorization header.
// Both "Token <jwt>" and "Bearer <jwt>" schemes are accepted.
func TokenFromHeader(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Token ", "Bearer "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// Auth rejects requests without a valid token. It sets userID in the
// Gin context on success.
func Auth(tokens *helpers.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromHeader(c)
		if raw == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}
		userID, ok := tokens.Validate(raw)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth sets userID when a valid token is present and lets the
// request through anonymously otherwise. Endpoints that render
// viewer-dependent fields (following, favorited) use this.
func OptionalAuth(tokens *helpers.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := TokenFromHeader(c); raw != "" {
			if userID, ok := tokens.Validate(raw); ok {
				c.Set(CtxUserIDKey, userID)
			}
		}
		c.Next()
	}
}
