package astar

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/metrics"
)

// Sentinel errors for route search.
var (
	// ErrNilGraph indicates a nil distance graph.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrNilForest indicates a nil forest.
	ErrNilForest = errors.New("astar: forest is nil")

	// ErrNodeNotFound indicates a source or target outside the graph.
	ErrNodeNotFound = errors.New("astar: node not found")

	// ErrBadDiscount indicates a route-reuse discount outside (0, 1].
	ErrBadDiscount = errors.New("astar: discount must be in (0, 1]")
)

// Path is the result of one search. An unreachable target has Distance
// +Inf and no Nodes.
type Path struct {
	Source   int
	Target   int
	Distance float64
	Nodes    []int // Source first, Target last
	Expanded int   // nodes popped from the open set
}

// Found reports whether the target was reached.
func (p Path) Found() bool {
	return len(p.Nodes) > 0
}

// Pair is one source/target request for Batch.
type Pair struct {
	Source, Target int
}

// Options configures searches.
//
// Workers – concurrent searches run by Batch (≥ 1).
// Logger  – destination for debug events.
// Metrics – optional search counters; nil records nothing.
type Options struct {
	Workers int
	Logger  logrus.FieldLogger
	Metrics *metrics.Collector
}

// Option is a functional option for Search and Batch.
type Option func(*Options)

// WithWorkers bounds Batch concurrency. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("astar: WithWorkers requires n ≥ 1")
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

// WithMetrics records every search on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) {
		o.Metrics = c
	}
}

// DefaultOptions returns four workers and the standard logger.
func DefaultOptions() Options {
	return Options{
		Workers: 4,
		Logger:  logrus.StandardLogger(),
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
