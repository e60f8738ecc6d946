package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
)

const userContextKey = "auth_user"

// RequireAuth verifies the bearer token with the identity gateway and stores
// the resolved user on the request context. Any failure ends the request
// with 401.
func RequireAuth(identity gateway.IdentityGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid Authorization header format")
			return
		}

		user, err := identity.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user RequireAuth attached to the request.
func CurrentUser(c *gin.Context) (*models.AuthUser, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.AuthUser)
	return user, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": msg})
}
