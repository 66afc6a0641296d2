// Package distgraph is the mutable adjacency view that every shortest-path
// computation reads from. It is built once per route-generation pass from a
// stargraph.Graph and afterwards only ever changes by lowering the weight of
// an existing edge (route reuse).
//
// Neighbor order is the edge insertion order of the source graph and never
// changes, so every traversal of the same graph is reproducible.
//
// Concurrency:
//
//   - Reads (Neighbors, Weight, MinCost, DistancesFromTarget) take a read lock.
//   - LightenEdge takes the write lock; callers still have to serialize a
//     weight commit against searches that must see a consistent snapshot.
package distgraph

import (
	"errors"
)

// Sentinel errors for DistanceGraph operations.
var (
	// ErrNodeNotFound indicates a node index outside 0..Len()-1.
	ErrNodeNotFound = errors.New("distgraph: node not found")

	// ErrEdgeNotFound indicates there is no edge between the two nodes.
	ErrEdgeNotFound = errors.New("distgraph: edge not found")

	// ErrNegativeWeight indicates a weight below zero.
	ErrNegativeWeight = errors.New("distgraph: negative edge weight")

	// ErrWeightIncrease indicates LightenEdge was asked to raise a weight.
	ErrWeightIncrease = errors.New("distgraph: edge weight may only decrease")

	// ErrDuplicateEdge indicates a second edge between the same pair of nodes.
	ErrDuplicateEdge = errors.New("distgraph: duplicate edge")
)

// Edge names an undirected edge by its endpoints. It is how callers report
// which weights were just lowered.
type Edge struct {
	U, V int
}

// arc is one direction of an undirected edge as stored in the adjacency list.
type arc struct {
	to     int
	weight float64
}
