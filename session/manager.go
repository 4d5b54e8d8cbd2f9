package session

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/pos-console/apiclient"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/token"
	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LoginFailedMessage is shown when the server gives no reason.
const LoginFailedMessage = "Login failed"

const defaultLogoutTimeout = 3 * time.Second

// AuthAPI is the part of posapi.Auth the manager calls.
type AuthAPI interface {
	Login(ctx context.Context, creds posapi.Credentials) (*posapi.LoginResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*posapi.LoginResponse, error)
}

// Manager moves the console between Unauthenticated and Authenticated.
type Manager struct {
	store         tokenstore.Store
	api           AuthAPI
	logger        zerolog.Logger
	logoutTimeout time.Duration

	mu      sync.RWMutex
	current *Session // cache of the decoded stored token
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger for session events. The default discards them.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLogoutTimeout bounds the server notification sent by Logout.
func WithLogoutTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.logoutTimeout = timeout
	}
}

// NewManager creates a Manager over the token store and auth endpoints. Call Bootstrap before use.
func NewManager(store tokenstore.Store, api AuthAPI, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] auth api is required")
	}

	m := &Manager{
		store:         store,
		api:           api,
		logger:        zerolog.Nop(),
		logoutTimeout: defaultLogoutTimeout,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Bootstrap restores the session from the token store at startup. A token that cannot be
// decoded is left in place and the console starts logged out.
func (m *Manager) Bootstrap(ctx context.Context) State {
	raw, err := m.store.Load(ctx)
	if err != nil {
		if !poserrors.Is(err, tokenstore.ErrNoToken) {
			m.logger.Warn().Err(err).Msg("token store unavailable at startup")
		}
		m.set(nil)
		return Unauthenticated
	}

	claims, err := token.Decode(raw)
	if err != nil {
		m.logger.Warn().Err(err).Msg("stored token is invalid, starting logged out")
		m.set(nil)
		return Unauthenticated
	}

	s := FromClaims(raw, claims)
	m.set(&s)
	m.logger.Debug().Str("username", s.Username).Str("role", s.Role.String()).Msg("session restored")
	return Authenticated
}

// Login never returns an error. Failures are reported through the result message.
func (m *Manager) Login(ctx context.Context, username, password string) LoginResult {
	resp, err := m.api.Login(ctx, posapi.Credentials{Username: username, Password: password})
	if err != nil {
		m.logger.Info().Err(err).Str("username", username).Msg("login rejected")
		return failed(apiclient.Message(err))
	}

	raw, err := resp.Credential()
	if err != nil {
		m.logger.Warn().Err(err).Msg("login response without token")
		return failed("")
	}

	if err := m.store.Save(ctx, raw); err != nil {
		m.logger.Err(err).Msg("failed to persist token")
		return failed("")
	}

	// The stored token stays in place when it cannot be decoded, as at Bootstrap.
	claims, err := token.Decode(raw)
	if err != nil {
		m.logger.Warn().Err(err).Msg("login returned an undecodable token")
		m.set(nil)
		return failed("")
	}

	s := FromClaims(raw, claims)
	m.set(&s)
	m.logger.Info().Str("username", s.Username).Str("role", s.Role.String()).Msg("logged in")
	return LoginResult{Success: true, Role: s.Role}
}

func failed(message string) LoginResult {
	if message == "" {
		message = LoginFailedMessage
	}
	return LoginResult{Message: message}
}

// Logout clears the local session. The server is told when a token is held, but its answer
// is ignored. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if tokenstore.Has(ctx, m.store) {
		notifyCtx, cancel := context.WithTimeout(ctx, m.logoutTimeout)
		if err := m.api.Logout(notifyCtx); err != nil {
			m.logger.Debug().Err(err).Msg("logout notification failed")
		}
		cancel()
	}

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Err(err).Msg("failed to clear token on logout")
	}
	m.set(nil)
}

// Current returns the session for the token held right now. A token removed elsewhere,
// by a 401 for example, drops the session; a replaced token is decoded again.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	raw, err := m.store.Load(ctx)
	if err != nil {
		if !poserrors.Is(err, tokenstore.ErrNoToken) {
			m.logger.Warn().Err(err).Msg("token store unavailable")
		}
		m.set(nil)
		return Session{}, false
	}

	m.mu.RLock()
	cached := m.current
	m.mu.RUnlock()
	if cached != nil && cached.RawToken == raw {
		return *cached, true
	}

	claims, err := token.Decode(raw)
	if err != nil {
		m.set(nil)
		return Session{}, false
	}
	s := FromClaims(raw, claims)
	m.set(&s)
	return s, true
}

func (m *Manager) State(ctx context.Context) State {
	if _, ok := m.Current(ctx); ok {
		return Authenticated
	}
	return Unauthenticated
}

// Refresh swaps the stored token for a new one issued by the server.
func (m *Manager) Refresh(ctx context.Context) error {
	if _, ok := m.Current(ctx); !ok {
		return poserrors.ErrNotAuthenticated
	}

	resp, err := m.api.Refresh(ctx)
	if err != nil {
		if poserrors.Is(err, poserrors.ErrSessionRevoked) {
			m.set(nil)
		}
		return errors.Wrap(err, "[Manager.Refresh] refresh")
	}

	raw, err := resp.Credential()
	if err != nil {
		return errors.Wrap(err, "[Manager.Refresh] Credential")
	}
	claims, err := token.Decode(raw)
	if err != nil {
		return errors.Wrap(err, "[Manager.Refresh] Decode")
	}
	if err := m.store.Save(ctx, raw); err != nil {
		return errors.Wrap(err, "[Manager.Refresh] Save")
	}

	s := FromClaims(raw, claims)
	m.set(&s)
	return nil
}

func (m *Manager) set(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
}
