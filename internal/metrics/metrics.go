// Package metrics provides Prometheus metrics for the membership ledger and
// the bid pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tenderdesk"

var (
	// StageTransitionsTotal counts bid stage transitions.
	// Labels: stage, action (submit, assign, approve, reject, edit), result (ok, stale, denied)
	StageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bids",
			Name:      "stage_transitions_total",
			Help:      "Total number of bid stage transitions",
		},
		[]string{"stage", "action", "result"},
	)

	// BidsCompletedTotal counts bids whose final stage was approved.
	BidsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bids",
			Name:      "completed_total",
			Help:      "Total number of bids with all stages approved",
		},
	)

	// InvitesTotal counts invite lifecycle events.
	// Labels: outcome (created, accepted, mismatch, expired, revoked, domain_denied)
	InvitesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "invites",
			Name:      "events_total",
			Help:      "Total number of invite events by outcome",
		},
		[]string{"outcome"},
	)

	// AuthzDenialsTotal counts refused authorization checks.
	// Labels: reason (role, tenant_mismatch, no_tenant, sole_owner)
	AuthzDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "authz",
			Name:      "denials_total",
			Help:      "Total number of refused authorization checks",
		},
		[]string{"reason"},
	)

	// ExternalCallsTotal counts upstream calls.
	// Labels: service (kvk, ai, mail), result (success, error)
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total number of calls to external services",
		},
		[]string{"service", "result"},
	)

	// ExternalCallDuration tracks upstream call latency.
	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to external services in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	// HTTPRequestsTotal counts served requests.
	// Labels: method, status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)
)

// Result maps an error onto the result label used by the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
