// Package metrics defines the custom Prometheus metrics of the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Settlement metrics ────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successfully settled carts.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of carts settled into sales.",
	},
)

// SettlementErrorsTotal counts failed settlements.
// Label:
//   - kind: error kind (e.g. "invalid_state", "not_found", "internal")
var SettlementErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_errors_total",
		Help:      "Total number of settlements that failed, by error kind.",
	},
	[]string{"kind"},
)

// SalesSettledTotal counts sale records created by settlement.
var SalesSettledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_settled_total",
		Help:      "Total number of cart lines settled into sales.",
	},
)

// StaleLinesDrainedTotal counts cart lines dropped because their product was deleted.
var StaleLinesDrainedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_lines_drained_total",
		Help:      "Total number of stale cart lines removed during settlement.",
	},
)

// RevenueCreditedTotal sums the money credited to vendors. Approximate; the
// ledger in the database is authoritative.
var RevenueCreditedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_credited_total",
		Help:      "Total amount credited to vendor revenue.",
	},
)

// SettlementDuration measures PlaceOrder end-to-end, lock included.
// Label:
//   - result: "ok" or the error kind
var SettlementDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "settlement_duration_seconds",
		Help:      "Duration of order settlement.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Cart and shipment metrics ─────────────────────────────────────────────────

var CartLinesAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_lines_added_total",
		Help:      "Total number of lines added to carts.",
	},
)

var SalesShippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_shipped_total",
		Help:      "Total number of sales moved to Shipped.",
	},
)
