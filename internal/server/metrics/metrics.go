// Package metrics holds Prometheus collectors for the auth service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome values for AuthOperations.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// authOperations counts session service calls by operation and outcome.
	authOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolekeeper_auth_operations_total",
		Help: "Total number of auth operations by outcome",
	}, []string{"operation", "outcome"})

	// refreshTokensIssued counts newly stored refresh tokens.
	refreshTokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rolekeeper_refresh_tokens_issued_total",
		Help: "Total number of refresh tokens created",
	})
)

// RecordOperation records the outcome of a session service operation.
func RecordOperation(operation, outcome string) {
	authOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordRefreshTokenIssued records creation of a refresh token.
func RecordRefreshTokenIssued() {
	refreshTokensIssued.Inc()
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
