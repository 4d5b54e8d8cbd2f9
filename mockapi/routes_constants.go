package mockapi

// Route path constants
const (
	// Auth Routes
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthRefresh  = "/auth/refresh"
	RouteAuthRegister = "/auth/register"
	RouteAuthRecovery = "/auth/password-recovery"

	// Account Routes
	RouteUsers = "/users"
	RouteUser  = "/users/{id}"

	// Operational Routes
	RouteMetrics = "/metrics"
	RouteHealth  = "/healthz"
)
