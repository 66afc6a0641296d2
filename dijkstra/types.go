package dijkstra

import (
	"errors"
	"iter"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source (or a seed) is not a node
	// of the graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was encountered
	// during relaxation.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrLabelLength indicates that the distance labels (or the parents
	// supplied through WithParents) do not have one entry per node.
	ErrLabelLength = errors.New("dijkstra: label slice length does not match graph")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// NoParent is the parent of the source and of every unreached node.
const NoParent = -1

// Graph is the read-only adjacency surface Dijkstra needs. distgraph.Graph
// satisfies it.
type Graph interface {
	Len() int
	Neighbors(u int) iter.Seq2[int, float64]
}

// Result holds the output of one Dijkstra run.
//
// Distances and Parents alias the slices the caller passed in (labels, and
// the WithParents slice when given); they are updated in place.
type Result struct {
	// Distances[v] is the shortest distance to v, +Inf if unreached.
	Distances []float64
	// Parents[v] is the predecessor of v on its shortest path, NoParent for
	// the source, seeds that were not improved, and unreached nodes.
	Parents []int
	// Reached counts nodes settled by this run.
	Reached int
}

// Options configures the behavior of the Dijkstra algorithm.
//
// Parents     – predecessor slice updated in place; nil allocates a new one.
// Seeds       – extra frontier nodes pushed with their current labels.
// MaxDistance – vertices whose distance would exceed this are not explored.
//
//	Must be ≥ 0. Default is +Inf (no cap).
type Options struct {
	Parents     []int
	Seeds       []int
	MaxDistance float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithParents makes Dijkstra update parents in place instead of allocating a
// fresh predecessor slice. Used to repair an existing shortest-path tree.
func WithParents(parents []int) Option {
	return func(o *Options) {
		o.Parents = parents
	}
}

// WithSeeds adds frontier nodes beyond the source. Each seed enters the queue
// with its current label, which must already be a valid upper bound.
func WithSeeds(seeds ...int) Option {
	return func(o *Options) {
		o.Seeds = append(o.Seeds, seeds...)
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Vertices whose shortest distance would exceed this value are not explored.
// Panics on a negative value.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
// no parents slice, no extra seeds, no distance cap.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.Inf(1),
	}
}

// NewLabels returns a label slice of length n with every entry +Inf except
// source, which is 0: the usual starting point for a single-source run.
func NewLabels(n, source int) []float64 {
	labels := make([]float64, n)
	for i := range labels {
		labels[i] = math.Inf(1)
	}
	if source >= 0 && source < n {
		labels[source] = 0
	}

	return labels
}
