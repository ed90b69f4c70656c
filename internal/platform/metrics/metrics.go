package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the normalization pipelines and
// the API layer.
type Metrics struct {
	BillsClassified   *prometheus.CounterVec
	ResolutionMisses  prometheus.Counter
	AltLinkMisses     prometheus.Counter
	DocumentsParsed   prometheus.Counter
	DocumentsFailed   prometheus.Counter
	StatsCacheHits    prometheus.Counter
	StatsCacheMisses  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BillsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "assembly_bills_classified_total",
			Help: "Total number of bills classified, labelled by resulting status",
		}, []string{"status"}),
		ResolutionMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_member_resolution_misses_total",
			Help: "Total number of proposer names that did not resolve to a member id",
		}),
		AltLinkMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_alt_link_misses_total",
			Help: "Total number of alternative-bill lookups with no table entry",
		}),
		DocumentsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_documents_parsed_total",
			Help: "Total number of bill documents parsed into sections",
		}),
		DocumentsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_documents_failed_total",
			Help: "Total number of bill documents that failed parsing",
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_stats_cache_hits_total",
			Help: "Total number of statistics responses served from cache",
		}),
		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assembly_stats_cache_misses_total",
			Help: "Total number of statistics requests that fell through to the store",
		}),
	}
}
