package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/utils"
)

// RequireRoles lets the request through when the token holds at least one of roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		for _, r := range claims.Roles {
			if _, ok := allowed[r]; ok {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("forbidden"))
		c.Abort()
	}
}
