package stargraph

import (
	"errors"
)

// Sentinel errors for graph construction and queries.
var (
	// ErrStarNotFound indicates an index outside 0..Len()-1.
	ErrStarNotFound = errors.New("stargraph: star not found")

	// ErrNegativeWeight indicates an edge cost below zero.
	ErrNegativeWeight = errors.New("stargraph: negative edge weight")

	// ErrLoopNotAllowed indicates an edge from a star to itself.
	ErrLoopNotAllowed = errors.New("stargraph: self-loop not allowed")

	// ErrDuplicateEdge indicates a second edge between the same pair of stars.
	ErrDuplicateEdge = errors.New("stargraph: duplicate edge")

	// ErrUnassignedComponent indicates a star whose component id was never set.
	ErrUnassignedComponent = errors.New("stargraph: star has no component")

	// ErrInvalidDocument indicates a graph document that failed validation.
	ErrInvalidDocument = errors.New("stargraph: invalid graph document")
)

// NoComponent marks a star that has not been labelled yet.
const NoComponent = -1

// Star is a node of the route graph.
type Star struct {
	// Index is the dense node id, assigned by AddStar.
	Index int
	// Name is informational only.
	Name string
	// Hex is the axial position of the system.
	Hex Hex
	// WTN is the world-trade-number.
	WTN float64
	// Component is the connected-component id, NoComponent until labelled.
	Component int
}

// Edge is an undirected jump link between stars U and V.
type Edge struct {
	U, V   int
	Weight float64
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity preallocates room for n stars.
func WithCapacity(n int) GraphOption {
	if n < 0 {
		panic("stargraph: WithCapacity(n < 0)")
	}
	return func(g *Graph) {
		g.stars = make([]Star, 0, n)
	}
}
