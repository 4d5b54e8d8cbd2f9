package mockapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/pos-console/token"
	"github.com/jrsteele09/pos-console/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the verified token claims
const ContextKeyClaims ContextKey = "claims"

// ClaimsFromContext returns the claims RequireAuth stored on the request.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims, ok
}

// RequireAuth validates the Bearer access token and rejects revoked ones.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeMessage(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				writeMessage(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := s.tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				s.logger.Debug().Err(err).Msg("rejected bearer token")
				writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			if s.revoked.IsRevoked(claims.ID) {
				writeMessage(w, http.StatusUnauthorized, "Token has been revoked")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole must be chained after RequireAuth.
func (s *Server) RequireRole(role users.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				writeMessage(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next(w, r)
		}
	}
}
