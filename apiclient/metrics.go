package apiclient

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestsTotal    *prometheus.CounterVec
	revocationsTotal prometheus.Counter
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_console",
			Name:      "api_requests_total",
			Help:      "API requests sent by the console, by method and response code",
		}, []string{"method", "code"}),

		revocationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pos_console",
			Name:      "session_revocations_total",
			Help:      "Sessions dropped because the API answered 401",
		}),
	}
}

func (m *metrics) observe(method string, statusCode int) {
	if m == nil {
		return
	}
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requestsTotal.WithLabelValues(method, code).Inc()
}

func (m *metrics) revoked() {
	if m == nil {
		return
	}
	m.revocationsTotal.Inc()
}
