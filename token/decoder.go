package token

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/users"
)

// Claims are the fields of the token payload the console relies on.
type Claims struct {
	Username string     `json:"username"`
	Role     users.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

var parser = jwtlib.NewParser()

// Decode parses the token's claims without verifying its signature.
//
// It fails with ErrMalformedToken for an empty string, a wrong segment count, bad
// base64url or a payload that is not JSON, and with ErrMissingUsername, ErrMissingRole or
// ErrUnknownRole when the claims cannot identify a console user.
func Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, poserrors.Wrapf(poserrors.ErrMalformedToken, "empty token")
	}
	if n := strings.Count(raw, ".") + 1; n != 3 {
		return nil, poserrors.Wrapf(poserrors.ErrMalformedToken, "token has %d segments", n)
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", poserrors.ErrMalformedToken, err)
	}

	if strings.TrimSpace(claims.Username) == "" {
		return nil, poserrors.ErrMissingUsername
	}
	if claims.Role == "" {
		return nil, poserrors.ErrMissingRole
	}
	role, err := users.ParseRole(string(claims.Role))
	if err != nil {
		return nil, err
	}
	claims.Role = role
	return claims, nil
}
