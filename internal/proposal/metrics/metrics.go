package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the proposal domain.
type Metrics struct {
	ProposalsSubmitted prometheus.Counter
	ProposalDecisions  *prometheus.CounterVec
	SubmissionsBlocked prometheus.Counter
}

// New creates and registers the proposal metrics.
func New() *Metrics {
	return &Metrics{
		ProposalsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licibit_proposals_submitted_total",
			Help: "Total number of proposals submitted against open tenders",
		}),
		ProposalDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "licibit_proposal_decisions_total",
			Help: "Total number of issuer decisions on proposals",
		}, []string{"decision"}),
		SubmissionsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licibit_proposal_submissions_blocked_total",
			Help: "Total number of submissions rejected because the tender was closed",
		}),
	}
}
