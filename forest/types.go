package forest

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/metrics"
)

// Sentinel errors for forest construction and maintenance.
var (
	// ErrNilGraph indicates a nil distance graph.
	ErrNilGraph = errors.New("forest: graph is nil")

	// ErrComponentLength indicates the component slice does not have one
	// entry per node.
	ErrComponentLength = errors.New("forest: component slice length does not match graph")

	// ErrLandmarkNotFound indicates a landmark index outside the graph.
	ErrLandmarkNotFound = errors.New("forest: landmark not found")

	// ErrComponentMismatch indicates a seed whose landmark does not lie in
	// the component it was filed under.
	ErrComponentMismatch = errors.New("forest: landmark outside its component")

	// ErrTreeIndex indicates a tree index outside 0..NumTrees()-1.
	ErrTreeIndex = errors.New("forest: tree index out of range")

	// ErrUnknownBackend indicates an unrecognised backend name.
	ErrUnknownBackend = errors.New("forest: unknown backend")
)

// Seeds maps component id → landmark node for one landmark slot.
type Seeds map[int]int

// Tree is a snapshot of one landmark's shortest-path tree.
type Tree struct {
	Landmark  int
	Component int
	Distances []float64
	Parents   []int
}

// ApproximateForest is the query and maintenance surface shared by every
// backend.
type ApproximateForest interface {
	// LowerBound returns the bound on dist(source, target); +Inf when the
	// two lie in different components.
	LowerBound(source, target int) float64

	// LowerBoundBulk returns LowerBound(nodes[i], target) for every i.
	LowerBoundBulk(nodes []int, target int) []float64

	// ExpandForest adds one tree per landmark not already present.
	ExpandForest(seeds ...Seeds) error

	// UpdateEdges repairs every tree after the weights of edges were lowered
	// on the underlying graph.
	UpdateEdges(edges []distgraph.Edge) error

	// NumTrees returns the number of trees.
	NumTrees() int

	// Landmarks returns the root of every tree, in tree order.
	Landmarks() []int

	// Tree returns a copy of tree i.
	Tree(i int) (Tree, error)

	// Epsilon returns the slack factor.
	Epsilon() float64

	// Backend names the implementation.
	Backend() Backend
}

// Options configures a forest.
//
// Epsilon – non-negative slack; bounds are divided by (1 + Epsilon).
// Workers – goroutines used by the unified backend (≥ 1).
// Logger  – destination for debug events.
// Metrics – optional Prometheus collectors; nil records nothing.
type Options struct {
	Epsilon float64
	Workers int
	Logger  logrus.FieldLogger
	Metrics *metrics.Collector
}

// Option is a functional option for forest construction.
type Option func(*Options)

// WithEpsilon sets the slack factor. Panics if eps is negative or NaN.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("forest: WithEpsilon requires a finite eps ≥ 0")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithWorkers bounds the unified backend's worker pool. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("forest: WithWorkers requires n ≥ 1")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger routes debug events to logger. A nil logger is ignored.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics records tree builds, repairs and queries on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) {
		o.Metrics = c
	}
}

// DefaultOptions returns epsilon 0, one worker per CPU and the standard logger.
func DefaultOptions() Options {
	return Options{
		Epsilon: 0,
		Workers: defaultWorkers(),
		Logger:  logrus.StandardLogger(),
	}
}
