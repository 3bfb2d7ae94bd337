package auth

import (
	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid. Used on public read
// endpoints so responses can be tailored to a logged-in viewer.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := userIDFromHeader(c.GetHeader("Authorization")); err == nil {
			c.Set("userID", userID)
		}
		c.Next()
	}
}
