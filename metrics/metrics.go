// Package metrics exposes Prometheus collectors for the landmark engine:
// shortest-path trees built and repaired, edges fed to incremental updates,
// lower-bound queries, landmark picks and route searches.
//
// A nil *Collector is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector holds all Prometheus metrics of the engine.
type Collector struct {
	registry *prometheus.Registry

	TreesBuilt      *prometheus.CounterVec
	TreesRepaired   *prometheus.CounterVec
	EdgesUpdated    prometheus.Counter
	BoundQueries    *prometheus.CounterVec
	LandmarksPicked *prometheus.CounterVec
	Searches        *prometheus.CounterVec
	SearchDuration  prometheus.Histogram
}

// NewCollector creates the collectors under namespace and registers them on
// a fresh registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	treesBuilt := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forest_trees_built_total",
			Help:      "Shortest-path trees built from scratch",
		},
		[]string{"backend"},
	)

	treesRepaired := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forest_trees_repaired_total",
			Help:      "Shortest-path trees touched by an incremental weight update",
		},
		[]string{"backend"},
	)

	edgesUpdated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forest_edges_updated_total",
			Help:      "Lowered edges passed to forest updates",
		},
	)

	boundQueries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forest_bound_queries_total",
			Help:      "Lower-bound pairs evaluated",
		},
		[]string{"backend"},
	)

	landmarksPicked := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "landmarks_picked_total",
			Help:      "Landmarks chosen, by scheme",
		},
		[]string{"scheme"},
	)

	searches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_searches_total",
			Help:      "Point-to-point route searches, by outcome",
		},
		[]string{"outcome"},
	)

	searchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_search_duration_seconds",
			Help:      "Route search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	registry.MustRegister(
		treesBuilt,
		treesRepaired,
		edgesUpdated,
		boundQueries,
		landmarksPicked,
		searches,
		searchDuration,
	)

	return &Collector{
		registry:        registry,
		TreesBuilt:      treesBuilt,
		TreesRepaired:   treesRepaired,
		EdgesUpdated:    edgesUpdated,
		BoundQueries:    boundQueries,
		LandmarksPicked: landmarksPicked,
		Searches:        searches,
		SearchDuration:  searchDuration,
	}
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// WriteText gathers every metric and writes it to w in the Prometheus text
// exposition format. A nil Collector writes nothing.
func (c *Collector) WriteText(w io.Writer) error {
	if c == nil {
		return nil
	}
	families, err := c.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "metrics: gather")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "metrics: write")
		}
	}
	return nil
}

// TreeBuilt records n trees built by backend.
func (c *Collector) TreeBuilt(backend string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.TreesBuilt.WithLabelValues(backend).Add(float64(n))
}

// TreeRepaired records n trees repaired by backend after edges were lowered.
func (c *Collector) TreeRepaired(backend string, n, edges int) {
	if c == nil {
		return
	}
	if n > 0 {
		c.TreesRepaired.WithLabelValues(backend).Add(float64(n))
	}
	c.EdgesUpdated.Add(float64(edges))
}

// BoundQuery records n lower-bound pairs evaluated by backend.
func (c *Collector) BoundQuery(backend string, n int) {
	if c == nil {
		return
	}
	c.BoundQueries.WithLabelValues(backend).Add(float64(n))
}

// LandmarkPicked records n landmarks chosen by scheme.
func (c *Collector) LandmarkPicked(scheme string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.LandmarksPicked.WithLabelValues(scheme).Add(float64(n))
}

// SearchDone records one route search and how long it took.
func (c *Collector) SearchDone(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(outcome).Inc()
	c.SearchDuration.Observe(elapsed.Seconds())
}
