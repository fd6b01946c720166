package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the access-token claims issued by the storefront's user service.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session describes a bearer token as far as the seeder can tell without
// the signing key.
type Session struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the session has an expiry at or before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// InspectToken decodes the claims of a JWT access token. The signature is
// not verified; the API remains the authority on whether the token is valid.
func InspectToken(token string) (Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("inspect access token: %w", err)
	}

	s := Session{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}
	if s.Subject == "" {
		s.Subject = claims.UserID
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
