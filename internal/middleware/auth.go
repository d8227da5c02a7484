package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bizmate/internal/domain"
	"bizmate/internal/service"
)

const (
	ContextKeyIdentity = "identity"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that validates JWT tokens and injects
// the caller's identity.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyIdentity, claims.Identity())
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin returns middleware that rejects non-admin callers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := GetIdentity(c)
		if err != nil || !service.IsAdmin(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "insufficient permissions"},
			})
			return
		}
		c.Next()
	}
}

// GetIdentity extracts the caller's identity from the Gin context.
func GetIdentity(c *gin.Context) (domain.Identity, error) {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return val.(domain.Identity), nil
}
