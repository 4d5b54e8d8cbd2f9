package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/internal/utils"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/token/jwt"
	"github.com/jrsteele09/pos-console/users"
)

const contentTypeJSON = "application/json; charset=utf-8"

// InvalidLoginMessage is returned for unknown users and wrong passwords alike.
const InvalidLoginMessage = "Invalid username or password"

// RecoveryAcceptedMessage does not reveal whether the address belongs to an account.
const RecoveryAcceptedMessage = "If the address is registered, a recovery email has been sent."

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds posapi.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := s.users.GetByUsername(strings.TrimSpace(creds.Username))
		if err != nil {
			s.metrics.loginAttempts.WithLabelValues(loginRejected).Inc()
			writeMessage(w, http.StatusUnauthorized, InvalidLoginMessage)
			return
		}

		if err := user.Authenticate(creds.Password); err != nil {
			if poserrors.Is(err, poserrors.ErrUserBlocked) {
				s.metrics.loginAttempts.WithLabelValues(loginBlocked).Inc()
				writeMessage(w, http.StatusForbidden, "Account is blocked")
				return
			}
			s.metrics.loginAttempts.WithLabelValues(loginRejected).Inc()
			writeMessage(w, http.StatusUnauthorized, InvalidLoginMessage)
			return
		}

		issued, err := s.issue(user)
		if err != nil {
			s.logger.Err(err).Str("username", user.Username).Msg("failed to issue token")
			writeMessage(w, http.StatusInternalServerError, "Could not issue token")
			return
		}
		s.metrics.loginAttempts.WithLabelValues(loginSucceeded).Inc()

		writeJSON(w, http.StatusOK, posapi.LoginResponse{
			AccessToken: utils.Ptr(issued.Raw),
			TokenType:   "Bearer",
			ExpiresIn:   s.expiresIn(issued),
		})
	}
}

// RegisterHandler creates a customer account unless another role is asked for.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req posapi.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		role := users.RoleCustomer
		if req.Role != "" {
			parsed, err := users.ParseRole(req.Role)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Unknown role")
				return
			}
			role = parsed
		}

		if _, err := s.users.GetByUsername(req.Username); err == nil {
			writeMessage(w, http.StatusConflict, "Username already taken")
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			s.logger.Err(err).Msg("failed to hash password")
			writeMessage(w, http.StatusInternalServerError, "Could not create account")
			return
		}
		user := &users.User{Username: req.Username, PasswordHash: hash, FullName: req.FullName, Role: role}
		if err := s.users.Upsert(user); err != nil {
			s.logger.Err(err).Msg("failed to store user")
			writeMessage(w, http.StatusInternalServerError, "Could not create account")
			return
		}

		issued, err := s.issue(user)
		if err != nil {
			s.logger.Err(err).Msg("failed to issue token")
			writeMessage(w, http.StatusInternalServerError, "Could not issue token")
			return
		}
		writeJSON(w, http.StatusCreated, posapi.LoginResponse{
			AccessToken: utils.Ptr(issued.Raw),
			TokenType:   "Bearer",
			ExpiresIn:   s.expiresIn(issued),
		})
	}
}

// LogoutHandler revokes the presented token until it would have expired.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if err := s.revoked.Add(claims.ID, claims.ExpiresAtTime()); err != nil {
			s.logger.Err(err).Msg("failed to revoke token")
			writeMessage(w, http.StatusInternalServerError, "Could not revoke token")
			return
		}
		s.metrics.tokensRevoked.Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// RefreshHandler swaps a live token for a new one. The answer uses the "token" field.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())

		user, err := s.users.GetByUsername(claims.Username)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		if user.Blocked {
			writeMessage(w, http.StatusForbidden, "Account is blocked")
			return
		}

		issued, err := s.issue(user)
		if err != nil {
			s.logger.Err(err).Msg("failed to issue token")
			writeMessage(w, http.StatusInternalServerError, "Could not issue token")
			return
		}
		if err := s.revoked.Add(claims.ID, claims.ExpiresAtTime()); err != nil {
			s.logger.Err(err).Msg("failed to revoke refreshed token")
		} else {
			s.metrics.tokensRevoked.Inc()
		}

		writeJSON(w, http.StatusOK, posapi.LoginResponse{
			Token:     utils.Ptr(issued.Raw),
			TokenType: "Bearer",
			ExpiresIn: s.expiresIn(issued),
		})
	}
}

func (s *Server) PasswordRecoveryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req posapi.PasswordRecoveryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		email := strings.TrimSpace(req.Email)
		if email == "" {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}
		if !strings.Contains(email, "@") {
			writeMessage(w, http.StatusBadRequest, "Invalid email address")
			return
		}

		s.metrics.recoveryRequests.Inc()
		s.logger.Info().Str("email", email).Msg("password recovery requested")
		writeMessage(w, http.StatusOK, RecoveryAcceptedMessage)
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		list, err := s.users.List(offset, limit)
		if err != nil {
			s.logger.Err(err).Msg("failed to list users")
			writeMessage(w, http.StatusInternalServerError, "Could not list users")
			return
		}
		if list == nil {
			list = []*users.User{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.users.GetByID(r.PathValue("id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) issue(user *users.User) (*jwt.IssuedToken, error) {
	issued, err := s.tokens.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	s.metrics.tokensIssued.Inc()
	return issued, nil
}

func (s *Server) expiresIn(issued *jwt.IssuedToken) int {
	return int(issued.ExpiresAt.Sub(jwt.NowTimeFunc()).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeMessage answers with the {"message": ...} body the console shows to users.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
