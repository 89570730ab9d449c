package middleware

import (
	"net/http" // HTTP status codes

	"contact_api/internal/service" // User service for token resolution

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserKey is the gin context key holding the authenticated *domain.User
const UserKey = "user"

// AuthMiddleware resolves the opaque token in the Authorization header to a
// user and aborts with 401 when it is missing or unknown. The header carries
// the stored token verbatim, with no scheme prefix.
func AuthMiddleware(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "Unauthorized"})
			return
		}
		c.Set(UserKey, user) // Store the resolved user for the handlers
		c.Next()
	}
}
