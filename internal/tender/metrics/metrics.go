package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the tender domain.
type Metrics struct {
	TendersCreated     prometheus.Counter
	TendersDeactivated prometheus.Counter
	ListingQueries     prometheus.Counter
}

// New creates and registers the tender metrics.
func New() *Metrics {
	return &Metrics{
		TendersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licibit_tenders_created_total",
			Help: "Total number of tenders published",
		}),
		TendersDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licibit_tenders_deactivated_total",
			Help: "Total number of tenders deactivated by their owner",
		}),
		ListingQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licibit_tender_listing_queries_total",
			Help: "Total number of filtered tender listing queries served",
		}),
	}
}
