package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	loginSucceeded = "success"
	loginRejected  = "rejected"
	loginBlocked   = "blocked"
)

type metrics struct {
	loginAttempts *prometheus.CounterVec
	tokensIssued  prometheus.Counter
	tokensRevoked prometheus.Counter

	recoveryRequests prometheus.Counter
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_mockapi",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),

		tokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pos_mockapi",
			Name:      "tokens_issued_total",
			Help:      "Access tokens issued by login, register and refresh",
		}),

		tokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pos_mockapi",
			Name:      "tokens_revoked_total",
			Help:      "Access tokens revoked by logout and refresh",
		}),

		recoveryRequests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pos_mockapi",
			Name:      "password_recovery_requests_total",
			Help:      "Accepted password recovery requests",
		}),
	}
}
