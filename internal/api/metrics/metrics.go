// Package metrics defines and registers all custom Prometheus metrics for the
// Poseidon API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poseidon"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - channel: "local" or "oauth"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by channel and result.",
	},
	[]string{"channel", "result"},
)

// AccountsCreatedTotal counts account creations.
// Label:
//   - channel: "local" (signup) or "oauth" (first delegated login)
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by channel.",
	},
	[]string{"channel"},
)

// ForbiddenTotal counts authorization gate denials.
// Label:
//   - reason: "unauthenticated" or "insufficient_role"
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// OAuthHandshakeDuration measures the delegated-authorization handshake from
// callback receipt to principal issue.
// Label:
//   - result: "success" or "failure"
var OAuthHandshakeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "oauth_handshake_duration_seconds",
		Help:      "Duration of the delegated-authorization callback handling.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsEnqueuedTotal counts audit events accepted by the dispatcher.
// Label:
//   - kind: the audit event kind (e.g. "login_success")
var AuditEventsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_enqueued_total",
		Help:      "Total number of audit events enqueued for persistence.",
	},
	[]string{"kind"},
)

// AuditEventsDroppedTotal counts audit events dropped because the worker
// buffer was full.
// Label:
//   - kind: the audit event kind
var AuditEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to backpressure.",
	},
	[]string{"kind"},
)
