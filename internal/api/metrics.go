package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	treeBuildsTotal   *prometheus.CounterVec
	treeBuildDuration prometheus.Histogram
	requestsTotal     *prometheus.CounterVec
}

// NewMetrics creates collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		treeBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craftdex_tree_builds_total",
				Help: "Number of dependency tree builds by result.",
			},
			[]string{"result"},
		),
		treeBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "craftdex_tree_build_duration_seconds",
				Help:    "Time taken to build a dependency tree.",
				Buckets: prometheus.DefBuckets,
			},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craftdex_http_requests_total",
				Help: "Number of HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
	}
	reg.MustRegister(m.treeBuildsTotal, m.treeBuildDuration, m.requestsTotal)
	return m
}
