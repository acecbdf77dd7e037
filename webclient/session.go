package webclient

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/chemsecure/utils"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)

// SessionUser is what the web layer knows about the signed-in user. It is read
// from the token claims without verifying the signature; the API verifies it
// on every call.
type SessionUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

func (u SessionUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DecodeToken reads the identity claims of an API token. Expired tokens are rejected.
func DecodeToken(token string, now time.Time) (SessionUser, error) {
	if token == "" {
		return SessionUser{}, ErrNoSession
	}

	claims := &utils.CustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return SessionUser{}, err
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return SessionUser{}, ErrSessionExpired
	}

	return SessionUser{
		ID:    claims.UserID(),
		Name:  claims.Name,
		Roles: claims.Roles,
	}, nil
}
