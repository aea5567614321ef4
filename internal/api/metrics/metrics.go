// Package metrics defines and registers all custom Prometheus metrics for the
// timesheet API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timesheetpro"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// TransitionsTotal counts timesheet status transitions that were applied.
// Labels:
//   - status: the status the timesheet entered ("Submitted", "Approved", ...)
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of timesheet status transitions applied.",
	},
	[]string{"status"},
)

// BulkSkippedTotal counts ids silently skipped by bulk operations because the
// transition precondition did not hold.
// Label:
//   - operation: "approve", "send", or "pay"
var BulkSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_skipped_total",
		Help:      "Total number of timesheets skipped by bulk operations.",
	},
	[]string{"operation"},
)

// ── Invoice metrics ───────────────────────────────────────────────────────────

// InvoicesExportedTotal counts invoice file downloads.
// Label:
//   - format: "csv" or "xlsx"
var InvoicesExportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_exported_total",
		Help:      "Total number of invoice files exported, by format.",
	},
	[]string{"format"},
)

// ── Summary metrics ───────────────────────────────────────────────────────────

// SummariesTotal counts AI summary generations.
// Label:
//   - outcome: "generated", "empty", or "error"
var SummariesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Total number of work summary generations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Delivery metrics ──────────────────────────────────────────────────────────

// DeliveriesDispatchedTotal counts outbound email/SMS deliveries handed to a
// worker.
// Label:
//   - channel: "email" or "sms"
var DeliveriesDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_dispatched_total",
		Help:      "Total number of outbound deliveries dispatched, by channel.",
	},
	[]string{"channel"},
)

// DeliveriesQueueDepth tracks the current number of deliveries waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DeliveriesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "deliveries_queue_depth",
		Help:      "Current number of deliveries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
