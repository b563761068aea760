// Package metrics defines and registers all custom Prometheus metrics for the
// booking console. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected" (backend refused the credentials) or
//     "error" (infrastructure failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts route-gate evaluations.
// Labels:
//   - area: "customer", "admin", "superadmin"
//   - decision: "pending", "redirect", "grant"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route gate evaluations, by area and decision.",
	},
	[]string{"area", "decision"},
)

// SessionLoadsTotal counts session store loads at startup.
// Label:
//   - result: "restored" (a persisted session became active) or "anonymous"
//     (nothing persisted, or the pair was discarded as corrupt)
var SessionLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_loads_total",
		Help:      "Total number of session store loads, by result.",
	},
	[]string{"result"},
)

// BackendRequestDuration measures round-trip latency of calls to the booking
// backend.
// Labels:
//   - op: backend operation ("login", "register", "update_profile",
//     "upload_photo", "impersonate", "stop_impersonation")
//   - status: HTTP status class ("2xx", "4xx", "5xx", "error")
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the booking backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "status"},
)
