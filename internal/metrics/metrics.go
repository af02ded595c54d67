// Package metrics defines and registers all custom Prometheus metrics for the
// social core. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto; the embedding application decides how to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts successfully registered.",
	},
)

// RegistrationsRejectedTotal counts rejected registration attempts.
// Label:
//   - reason: "duplicate_username", "duplicate_email", or "invalid"
var RegistrationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of registration attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures how long a single bcrypt hash or verification
// takes. Useful for tuning the cost factor.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and verification operations.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Social graph metrics ──────────────────────────────────────────────────────

// FollowOpsTotal counts follow-graph mutations that completed without error.
// Labels:
//   - op: "follow" or "unfollow"
//   - result: "applied" (edge set changed) or "noop" (already in target state)
var FollowOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follow_ops_total",
		Help:      "Total number of follow/unfollow operations, by op and result.",
	},
	[]string{"op", "result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts posts appended to the ledger.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)
