// Package metrics defines and registers all custom Prometheus metrics for
// the user-management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userapi"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts rejected bearer-token authentications (missing
// header, malformed prefix, invalid or expired token, deleted subject).
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected bearer-token authentications.",
	},
)

// TokensReissuedTotal counts tokens reissued on authenticated calls.
var TokensReissuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_reissued_total",
		Help:      "Total number of tokens reissued on authenticated calls.",
	},
)

// UsersCreatedTotal counts created users.
// Label:
//   - role: "ADMIN" or "USER"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts deleted users (self-service and administrative).
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of deleted users.",
	},
)

// UpdateRejectionsTotal counts field-update requests rejected by a pipeline
// gate.
// Label:
//   - reason: "invalid_field", "field_not_updatable", "validation_failed", or "email_conflict"
var UpdateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "update_rejections_total",
		Help:      "Total number of field-update requests rejected, by pipeline gate.",
	},
	[]string{"reason"},
)
