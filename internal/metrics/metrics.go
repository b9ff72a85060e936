// Package metrics provides Prometheus metric collection for the auth flow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuthMetrics is the interface consumed by the service and handler layers.
type AuthMetrics interface {
	RecordSignup(outcome string)
	RecordLogin(outcome string)
	RecordTokenIssued(tokenType string)
	RecordTokenValidation(outcome string)
	RecordAuthLatency(operation string, duration time.Duration)
}

// Collector collects Prometheus metrics for authentication operations.
type Collector struct {
	signups     *prometheus.CounterVec
	logins      *prometheus.CounterVec
	tokens      *prometheus.CounterVec
	validations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewCollector creates a new Collector and registers its metrics on the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authkit_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authkit_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authkit_tokens_issued_total",
			Help: "Issued session credentials by token type",
		}, []string{"token_type"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authkit_token_validations_total",
			Help: "Token validations by outcome",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authkit_auth_latency_seconds",
			Help:    "Latency of authentication operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.signups,
		c.logins,
		c.tokens,
		c.validations,
		c.latency,
	)

	return c
}

// RecordSignup records a signup attempt outcome.
func (c *Collector) RecordSignup(outcome string) {
	c.signups.WithLabelValues(outcome).Inc()
}

// RecordLogin records a login attempt outcome.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordTokenIssued records an issued credential.
func (c *Collector) RecordTokenIssued(tokenType string) {
	c.tokens.WithLabelValues(tokenType).Inc()
}

// RecordTokenValidation records a token validation outcome.
func (c *Collector) RecordTokenValidation(outcome string) {
	c.validations.WithLabelValues(outcome).Inc()
}

// RecordAuthLatency records the latency of an authentication operation.
func (c *Collector) RecordAuthLatency(operation string, duration time.Duration) {
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop returns a collector bound to a throwaway registry, for tests and
// callers that do not scrape.
func Noop() *Collector {
	return NewCollector(prometheus.NewRegistry())
}
