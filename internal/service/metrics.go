package service

import (
	"strings"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of per-kind searches executed",
		},
		[]string{"kind"},
	)

	searchTierInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_tier_invocations_total",
			Help: "Number of retrieval tier invocations",
		},
		[]string{"kind", "tier"},
	)

	searchHydrationDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_hydration_dropped_total",
			Help: "Ids returned by retrieval but missing at hydration time",
		},
		[]string{"kind"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Duration of a whole search call in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)
)

// kindLabel metric/log label for a content kind
func kindLabel(kind domain.SearchKind) string {
	return strings.ToLower(string(kind))
}
