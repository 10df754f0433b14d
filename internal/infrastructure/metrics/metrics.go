package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DistributionMetrics holds routing and lead lifecycle metrics.
// All Record methods are safe on a nil receiver.
type DistributionMetrics struct {
	// Routing
	VisitsRoutedTotal      *prometheus.CounterVec
	RoutingFailuresTotal   *prometheus.CounterVec
	RulesBootstrappedTotal prometheus.Counter
	AllocationsTotal       *prometheus.CounterVec

	// Leads
	LeadsCreatedTotal   *prometheus.CounterVec
	LeadsDuplicateTotal *prometheus.CounterVec
	LeadsExpiredTotal   *prometheus.CounterVec
	LeadsWithdrawnTotal *prometheus.CounterVec
	ExpirySweepDuration prometheus.Histogram
}

func NewDistributionMetrics(reg prometheus.Registerer) *DistributionMetrics {
	factory := promauto.With(reg)
	return &DistributionMetrics{
		VisitsRoutedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visits_routed_total",
				Help: "Visitors routed to a sales page",
			},
			[]string{"sales_page_id", "channel", "sticky"},
		),
		RoutingFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routing_failures_total",
				Help: "Routing requests that ended without a sales page",
			},
			[]string{"reason"},
		),
		RulesBootstrappedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "distribution_rules_bootstrapped_total",
				Help: "Times the default rule set was materialized",
			},
		),
		AllocationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocation_previews_total",
				Help: "Largest remainder allocations computed",
			},
			[]string{"channel"},
		),
		LeadsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_created_total",
				Help: "Phone leads captured",
			},
			[]string{"sales_page_id", "source"},
		),
		LeadsDuplicateTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_duplicate_total",
				Help: "Captures rejected because the lead is already active on the page",
			},
			[]string{"sales_page_id"},
		),
		LeadsExpiredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_expired_total",
				Help: "Leads that reached their deadline",
			},
			[]string{"sales_page_id"},
		),
		LeadsWithdrawnTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_withdrawn_total",
				Help: "Leads withdrawn by an operator",
			},
			[]string{"sales_page_id", "transferred"},
		),
		ExpirySweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lead_expiry_sweep_duration_seconds",
				Help:    "Duration of the lead expiry sweep",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
		),
	}
}

func (m *DistributionMetrics) RecordVisitRouted(salesPageID, channel string, sticky bool) {
	if m == nil {
		return
	}
	m.VisitsRoutedTotal.WithLabelValues(salesPageID, channel, strconv.FormatBool(sticky)).Inc()
}

func (m *DistributionMetrics) RecordRoutingFailure(reason string) {
	if m == nil {
		return
	}
	m.RoutingFailuresTotal.WithLabelValues(reason).Inc()
}

func (m *DistributionMetrics) RecordBootstrap() {
	if m == nil {
		return
	}
	m.RulesBootstrappedTotal.Inc()
}

func (m *DistributionMetrics) RecordAllocation(channel string) {
	if m == nil {
		return
	}
	m.AllocationsTotal.WithLabelValues(channel).Inc()
}

func (m *DistributionMetrics) RecordLeadCreated(salesPageID, source string) {
	if m == nil {
		return
	}
	m.LeadsCreatedTotal.WithLabelValues(salesPageID, source).Inc()
}

func (m *DistributionMetrics) RecordDuplicateLead(salesPageID string) {
	if m == nil {
		return
	}
	m.LeadsDuplicateTotal.WithLabelValues(salesPageID).Inc()
}

func (m *DistributionMetrics) RecordLeadExpired(salesPageID string) {
	if m == nil {
		return
	}
	m.LeadsExpiredTotal.WithLabelValues(salesPageID).Inc()
}

func (m *DistributionMetrics) RecordLeadWithdrawn(salesPageID string, transferred bool) {
	if m == nil {
		return
	}
	m.LeadsWithdrawnTotal.WithLabelValues(salesPageID, strconv.FormatBool(transferred)).Inc()
}

func (m *DistributionMetrics) RecordExpirySweep(durationSeconds float64) {
	if m == nil {
		return
	}
	m.ExpirySweepDuration.Observe(durationSeconds)
}
