// Package metrics defines and registers all custom Prometheus metrics for the
// hospital auth service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hms"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by externally visible outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "malformed" or "dependency_failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// PasswordVerifyDuration measures a single password verification, decoy
// verifications included.
var PasswordVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "password_verify_duration_seconds",
		Help:      "Duration of password hash verification.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditDroppedTotal counts audit records dropped because a worker queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "audit_dropped_total",
		Help:      "Total number of login audit records dropped on a full queue.",
	},
)

// AuditErrorsTotal counts audit records the sink failed to persist.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "audit_errors_total",
		Help:      "Total number of login audit records that failed to persist.",
	},
)

// AuditQueueDepth tracks the number of records waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsCreatedTotal counts newly provisioned accounts.
// Label:
//   - role: the account role (e.g. "DOCTOR")
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LegacySecretsMigratedTotal counts stored secrets rehashed from plaintext.
var LegacySecretsMigratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "legacy_secrets_migrated_total",
		Help:      "Total number of plaintext secrets replaced by a hash.",
	},
)
