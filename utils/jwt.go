package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingKey   = errors.New("jwt signing key is not configured")
)

// JWTSettings mirrors the JWT_* configuration keys.
type JWTSettings struct {
	Key               string
	Issuer            string
	Audience          string
	ExpirationMinutes int
}

// CustomClaims carries the subject name, the subject id (sub) and one entry per role.
type CustomClaims struct {
	Name  string   `json:"name"`
	Roles []string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject id claim.
func (c *CustomClaims) UserID() string {
	return c.Subject
}

func (c *CustomClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func GenerateToken(settings JWTSettings, userID, name string, roles []string) (string, error) {
	if settings.Key == "" {
		return "", ErrMissingKey
	}
	now := time.Now()
	claims := &CustomClaims{
		Name:  name,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    settings.Issuer,
			Audience:  jwt.ClaimStrings{settings.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(settings.ExpirationMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(settings.Key))
}

// ParseToken verifies signature, expiry, issuer and audience.
func ParseToken(settings JWTSettings, tokenString string) (*CustomClaims, error) {
	if settings.Key == "" {
		return nil, ErrMissingKey
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if settings.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(settings.Issuer))
	}
	if settings.Audience != "" {
		opts = append(opts, jwt.WithAudience(settings.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(settings.Key), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
