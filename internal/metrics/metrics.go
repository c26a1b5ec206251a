// Package metrics registers the Prometheus collectors served on /metrics.
package metrics

import (
	"errors"

	"mercado/internal/repositories"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"

	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ProductMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_mutations_total",
		Help: "Product create, update and delete calls by outcome.",
	}, []string{"operation", "outcome"})
)

// ObserveMutation counts one product mutation.
func ObserveMutation(op string, err error) {
	ProductMutations.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies a repository error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, repositories.ErrProductNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
