// Package metrics defines all custom Prometheus metrics for the loyalty
// API. It is the single source of truth for metric names, labels, and
// help strings; metrics self-register with the default registry via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loyalty"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts created accounts.
// Label:
//   - role: "customer" or "admin"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// PointsAdjustmentsTotal counts successfully applied balance adjustments.
// Label:
//   - direction: "credit" (delta >= 0) or "debit" (delta < 0)
var PointsAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_adjustments_total",
		Help:      "Total number of applied points adjustments, by direction.",
	},
	[]string{"direction"},
)

// PointsAdjustmentErrorsTotal counts rejected or failed adjustments.
// Label:
//   - reason: "invalid_delta", "account_not_found", or "storage"
var PointsAdjustmentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_adjustment_errors_total",
		Help:      "Total number of points adjustments that were rejected or failed.",
	},
	[]string{"reason"},
)

// LeaderboardCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit" or "miss"
var LeaderboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_cache_total",
		Help:      "Total number of leaderboard cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogOperationsTotal counts catalog write operations.
// Labels:
//   - kind: "benefit" or "prize"
//   - op:   "create", "update", or "delete"
var CatalogOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_operations_total",
		Help:      "Total number of catalog mutations, by kind and operation.",
	},
	[]string{"kind", "op"},
)

// ── Audit queue metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit records waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteErrorsTotal counts failed audit-trail inserts.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of failed points-audit inserts.",
	},
)
