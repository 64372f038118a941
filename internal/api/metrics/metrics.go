// Package metrics defines the custom Prometheus metrics of the catalog API.
// HTTP request metrics come from echoprometheus; everything here is
// domain-level. All metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"action", "outcome"},
)

// AuthRejectionsTotal counts requests stopped by the auth gate or role guard.
// Label:
//   - reason: "unauthenticated", "invalid_token" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for missing, invalid or insufficient credentials.",
	},
	[]string{"reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// MutationsTotal counts successful writes.
// Labels:
//   - entity: "product" or "user"
//   - action: "create", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful catalog and user mutations.",
	},
	[]string{"entity", "action"},
)

// ValidationErrorsTotal counts requests rejected for bad input, including
// unusable query parameters.
// Label:
//   - route: the matched route path (e.g. "/api/products/sort")
var ValidationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_errors_total",
		Help:      "Total number of requests rejected with a validation error.",
	},
	[]string{"route"},
)

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
