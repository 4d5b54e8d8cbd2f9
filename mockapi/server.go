// Package mockapi is a stand-in POS backend that only knows about accounts and tokens.
// It lets the console be exercised end to end without the real API.
package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/pos-console/internal/config"
	"github.com/jrsteele09/pos-console/internal/ui"
	"github.com/jrsteele09/pos-console/token"
	"github.com/jrsteele09/pos-console/token/jwt"
	"github.com/jrsteele09/pos-console/users"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	users    users.UserRepo
	tokens   *jwt.Creator
	revoked  token.RevokedTokenCache
	registry *prometheus.Registry
	metrics  *metrics
	logger   zerolog.Logger
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRevokedTokenCache replaces the in-memory revocation list.
func WithRevokedTokenCache(cache token.RevokedTokenCache) Option {
	return func(s *Server) {
		s.revoked = cache
	}
}

func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

func New(cfg config.Config, userRepo users.UserRepo, creator *jwt.Creator, opts ...Option) (*Server, error) {
	if userRepo == nil {
		return nil, errors.New("[mockapi.New] user repo is required")
	}
	if creator == nil {
		return nil, errors.New("[mockapi.New] token creator is required")
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		users:   userRepo,
		tokens:  creator,
		revoked: token.NewInMemoryRevokedTokenCache(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRecovery, ChainMiddleware(s.PasswordRecoveryHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Preflight for browser clients
	s.RegisterRouteFunc("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {}, s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))
	s.RegisterRouteFunc("GET "+RouteUser, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireRole(users.RoleAdmin))...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.RegisterRouteFunc("GET "+RouteHealth, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1], 0, 0)
		} else {
			s.logRoute("", parts[0], 0, 0)
		}
	}
}

// logRoute prints a coloured route line; status and elapsed are omitted when zero.
func (s *Server) logRoute(method, path string, status int, elapsed time.Duration) {
	line := "[" + ui.Method(method) + "] " + path
	if status > 0 {
		line += " " + ui.StatusColor(status) + http.StatusText(status) + ui.ResetColor + " " + elapsed.Round(time.Microsecond).String()
	}
	s.logger.Info().Msg(line)
}

// PurgeRevoked drops revocation entries for tokens that have expired anyway.
func (s *Server) PurgeRevoked() {
	s.revoked.Cleanup()
}
