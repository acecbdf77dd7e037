package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/utils"
)

// WebSocketAuthMiddleware reads the token from the query string, since browsers
// cannot set headers on a websocket handshake.
func WebSocketAuthMiddleware(settings utils.JWTSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(settings, token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}
