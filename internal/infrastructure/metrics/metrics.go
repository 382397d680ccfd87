package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrintshopMetrics holds every collector the service exports.
type PrintshopMetrics struct {
	// Orders
	OrdersCreatedTotal       *prometheus.CounterVec
	OrdersCreatedAmountTotal *prometheus.CounterVec
	OrderFileUploadFailures  *prometheus.CounterVec
	OrderTransitionsTotal    *prometheus.CounterVec
	OrderProcessingDuration  *prometheus.HistogramVec

	// Points ledger
	PointsAccruedTotal    prometheus.Counter
	PointsRedeemedTotal   prometheus.Counter
	RedemptionsTotal      *prometheus.CounterVec
	ReconciliationRuns    *prometheus.CounterVec
	ReconciledClientsLast prometheus.Gauge

	// Maintenance
	PriceAdjustmentsTotal prometheus.Counter
	PriceRowsAdjusted     prometheus.Counter
	FilesPurgedTotal      *prometheus.CounterVec
	FilesPurgeFailedTotal *prometheus.CounterVec

	// Errors
	ErrorsTotal *prometheus.CounterVec
}

// NewPrintshopMetrics registers the collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrintshopMetrics(reg prometheus.Registerer) *PrintshopMetrics {
	f := promauto.With(reg)

	return &PrintshopMetrics{
		OrdersCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_orders_created_total",
				Help: "Orders created, by shop",
			},
			[]string{"shop_id"},
		),
		OrdersCreatedAmountTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_orders_created_amount_total",
				Help: "Sum of created order totals, by shop",
			},
			[]string{"shop_id"},
		),
		OrderFileUploadFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_order_file_upload_failures_total",
				Help: "Order file payloads that failed to upload",
			},
			[]string{"shop_id"},
		),
		OrderTransitionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_order_transitions_total",
				Help: "Order status transitions",
			},
			[]string{"from", "to"},
		),
		OrderProcessingDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "printshop_order_processing_duration_seconds",
				Help:    "Time from order creation to a terminal status",
				Buckets: prometheus.ExponentialBuckets(60, 2, 12), // 1m, 2m, 4m ... ~34h
			},
			[]string{"shop_id", "final_status"},
		),

		PointsAccruedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "printshop_points_accrued_total",
			Help: "Loyalty points accrued from completed orders",
		}),
		PointsRedeemedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "printshop_points_redeemed_total",
			Help: "Loyalty points debited by reward redemptions",
		}),
		RedemptionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_reward_redemptions_total",
				Help: "Reward redemptions, by reward",
			},
			[]string{"reward_id"},
		),
		ReconciliationRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_points_reconciliation_runs_total",
				Help: "Point reconciliation runs, by mode",
			},
			[]string{"mode"},
		),
		ReconciledClientsLast: f.NewGauge(prometheus.GaugeOpts{
			Name: "printshop_points_reconciled_clients",
			Help: "Client balances rewritten by the last reconciliation",
		}),

		PriceAdjustmentsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "printshop_price_adjustments_total",
			Help: "Bulk price adjustments applied",
		}),
		PriceRowsAdjusted: f.NewCounter(prometheus.CounterOpts{
			Name: "printshop_price_rows_adjusted_total",
			Help: "Global price rows rewritten by bulk adjustments",
		}),
		FilesPurgedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_files_purged_total",
				Help: "Order files purged, by mode",
			},
			[]string{"mode"},
		),
		FilesPurgeFailedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_files_purge_failed_total",
				Help: "Order files left for a later purge attempt, by mode",
			},
			[]string{"mode"},
		),

		ErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "printshop_errors_total",
				Help: "Operation failures, by operation and error kind",
			},
			[]string{"operation", "kind"},
		),
	}
}

func (m *PrintshopMetrics) RecordOrderCreated(shopID string, total float64, failedUploads int) {
	m.OrdersCreatedTotal.WithLabelValues(shopID).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(shopID).Add(total)
	if failedUploads > 0 {
		m.OrderFileUploadFailures.WithLabelValues(shopID).Add(float64(failedUploads))
	}
}

func (m *PrintshopMetrics) RecordTransition(from, to string) {
	m.OrderTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *PrintshopMetrics) RecordOrderProcessingDuration(shopID, finalStatus string, durationSeconds float64) {
	m.OrderProcessingDuration.WithLabelValues(shopID, finalStatus).Observe(durationSeconds)
}

func (m *PrintshopMetrics) RecordPointsAccrued(points int64) {
	m.PointsAccruedTotal.Add(float64(points))
}

func (m *PrintshopMetrics) RecordRedemption(rewardID string, points int64) {
	m.RedemptionsTotal.WithLabelValues(rewardID).Inc()
	m.PointsRedeemedTotal.Add(float64(points))
}

func (m *PrintshopMetrics) RecordReconciliation(mode string, clients int64) {
	m.ReconciliationRuns.WithLabelValues(mode).Inc()
	m.ReconciledClientsLast.Set(float64(clients))
}

func (m *PrintshopMetrics) RecordPriceAdjustment(rows int64) {
	m.PriceAdjustmentsTotal.Inc()
	m.PriceRowsAdjusted.Add(float64(rows))
}

func (m *PrintshopMetrics) RecordPurge(mode string, purged, failed int64) {
	m.FilesPurgedTotal.WithLabelValues(mode).Add(float64(purged))
	m.FilesPurgeFailedTotal.WithLabelValues(mode).Add(float64(failed))
}

func (m *PrintshopMetrics) RecordError(operation, kind string) {
	m.ErrorsTotal.WithLabelValues(operation, kind).Inc()
}
