// Package session owns the console's authentication state.
//
// The Manager is the only writer. Everyone else reads value snapshots obtained from
// Manager.Current, which always agrees with the token store.
package session

import (
	"time"

	"github.com/jrsteele09/pos-console/token"
	"github.com/jrsteele09/pos-console/users"
)

// Session is the identity decoded from the stored token.
type Session struct {
	Username string
	Role     users.Role
	RawToken string
	IssuedAt time.Time // zero when the token has no iat claim
}

// FromClaims builds the session for raw from its decoded claims.
func FromClaims(raw string, claims *token.Claims) Session {
	return Session{
		Username: claims.Username,
		Role:     claims.Role,
		RawToken: raw,
		IssuedAt: claims.IssuedAtTime(),
	}
}

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// LoginResult is what the login form shows: the role to route to, or a message.
type LoginResult struct {
	Success bool
	Role    users.Role
	Message string
}
