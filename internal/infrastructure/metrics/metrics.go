// Package metrics defines and registers the custom Prometheus metrics of the
// store rating API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store_ratings"

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsSubmittedTotal counts successful rating submissions.
// Label:
//   - outcome: "created", "updated", or "conflict_resolved" when a concurrent
//     insert lost the uniqueness race and was applied as an update
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings saved, by outcome.",
	},
	[]string{"outcome"},
)

// RatingValues observes the submitted rating values.
var RatingValues = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_value",
		Help:      "Distribution of submitted rating values.",
		Buckets:   []float64{1, 2, 3, 4, 5},
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts created accounts.
// Label:
//   - role: "admin", "owner", or "user"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// StoresCreatedTotal counts created stores.
var StoresCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stores_created_total",
		Help:      "Total number of stores created.",
	},
)
