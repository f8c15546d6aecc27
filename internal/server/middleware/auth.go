package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/security"
)

const bearerPrefix = "bearer "

// RequireAuth returns middleware that verifies the Bearer token from the
// Authorization header and puts the decoded identity on the request context.
// It is a pure boundary check: no state is mutated and the user store is
// never consulted. Requests without a token get 401 "No token provided";
// any verification failure gets 401 "Invalid token".
func RequireAuth(tokens *security.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		ctx := WithIdentity(c.Request.Context(), claims.Subject, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractBearer returns the token from an Authorization header value, or ""
// if the header is empty. A missing "Bearer " prefix is tolerated: the whole
// value is then treated as the token and left to signature verification.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if v == "" {
		return ""
	}
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}
	return v
}
