package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hydrationRecomputeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reference_data_service",
		Subsystem: "hydration",
		Name:      "recomputes_total",
		Help:      "Number of hydration snapshot recomputations per vocabulary domain.",
	}, []string{"domain", "language"})

	hydrationStaleCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reference_data_service",
		Subsystem: "hydration",
		Name:      "stale_recomputes_discarded_total",
		Help:      "In-flight hydration recomputations discarded because a newer language was selected.",
	}, []string{"domain"})

	resolverFallbackCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reference_data_service",
		Subsystem: "resolver",
		Name:      "fallback_total",
		Help:      "Lookups that fell through the alias map to a best-effort normalized id.",
	}, []string{"domain"})

	storeRecordsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reference_data_service",
		Subsystem: "store",
		Name:      "records",
		Help:      "Current record count per reference store, including hidden records.",
	}, []string{"domain"})

	storeMutationGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reference_data_service",
		Subsystem: "store",
		Name:      "last_mutation_timestamp_seconds",
		Help:      "Unix timestamp of the most recent persisted mutation per store.",
	}, []string{"domain"})
)

func init() {
	prometheus.MustRegister(
		hydrationRecomputeCounter,
		hydrationStaleCounter,
		resolverFallbackCounter,
		storeRecordsGauge,
		storeMutationGauge,
	)
}

// RecordHydrationRecompute counts a completed snapshot recomputation.
func RecordHydrationRecompute(domain, language string) {
	hydrationRecomputeCounter.WithLabelValues(domain, language).Inc()
}

// RecordHydrationStale counts a discarded stale recomputation.
func RecordHydrationStale(domain string) {
	hydrationStaleCounter.WithLabelValues(domain).Inc()
}

// RecordResolverFallback counts an unmapped lookup degrading to a normalized id.
func RecordResolverFallback(domain string) {
	resolverFallbackCounter.WithLabelValues(domain).Inc()
}

// RecordStoreState updates record count and mutation watermark for a store.
func RecordStoreState(domain string, records int, ts time.Time) {
	storeRecordsGauge.WithLabelValues(domain).Set(float64(records))
	if !ts.IsZero() {
		storeMutationGauge.WithLabelValues(domain).Set(float64(ts.Unix()))
	}
}
