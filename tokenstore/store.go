// Package tokenstore persists the console's single bearer token under a fixed key.
//
// A store holds at most one token. Absence of a token means the console is logged out.
// Implementations never inspect the token.
package tokenstore

import (
	"context"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
)

// Key is the fixed name the token is stored under.
const Key = "token"

// ErrNoToken is returned by Load when nothing is stored.
var ErrNoToken = poserrors.ErrNoToken

// Store is safe for concurrent use; the last writer wins.
type Store interface {
	// Save replaces any stored token.
	Save(ctx context.Context, token string) error

	// Load returns the stored token or ErrNoToken.
	Load(ctx context.Context) (string, error)

	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Has reports whether a token is stored. Backend errors count as absent.
func Has(ctx context.Context, s Store) bool {
	_, err := s.Load(ctx)
	return err == nil
}
