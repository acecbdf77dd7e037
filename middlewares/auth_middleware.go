package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/utils"
)

// Context keys set once a token has been verified.
const (
	ContextClaims   = "claims"
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
	ContextRoles    = "roles"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(settings utils.JWTSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(settings, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.CustomClaims) {
	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, claims.UserID())
	c.Set(ContextUserName, claims.Name)
	c.Set(ContextRoles, claims.Roles)
}

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(c *gin.Context) (*utils.CustomClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.CustomClaims)
	return claims, ok && claims != nil
}
