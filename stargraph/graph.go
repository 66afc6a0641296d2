package stargraph

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Graph is the weighted star graph. The zero value is not usable; call NewGraph.
type Graph struct {
	mu sync.RWMutex // guards stars, edges and pairs

	stars []Star
	edges []Edge

	// pairs[key(u,v)] = position in edges, with u < v
	pairs map[uint64]int
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		pairs: make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// pairKey packs an unordered pair into one map key.
func pairKey(u, v int) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(uint32(u))<<32 | uint64(uint32(v))
}

// AddStar appends a star and returns its index. The star's Index field is
// overwritten; its Component starts as NoComponent.
// Complexity: O(1) amortized.
func (g *Graph) AddStar(name string, hex Hex, wtn float64) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := len(g.stars)
	g.stars = append(g.stars, Star{
		Index:     idx,
		Name:      name,
		Hex:       hex,
		WTN:       wtn,
		Component: NoComponent,
	})

	return idx
}

// AddEdge links stars u and v with the given non-negative weight.
//
// Errors:
//   - ErrStarNotFound if either endpoint is out of range.
//   - ErrLoopNotAllowed if u == v.
//   - ErrNegativeWeight if weight < 0 or NaN.
//   - ErrDuplicateEdge if u and v are already linked.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if u == v {
		return errors.Wrapf(ErrLoopNotAllowed, "edge %d-%d", u, v)
	}
	if weight < 0 || math.IsNaN(weight) {
		return errors.Wrapf(ErrNegativeWeight, "edge %d-%d weight=%g", u, v, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.has(u) || !g.has(v) {
		return errors.Wrapf(ErrStarNotFound, "edge %d-%d", u, v)
	}
	key := pairKey(u, v)
	if _, ok := g.pairs[key]; ok {
		return errors.Wrapf(ErrDuplicateEdge, "edge %d-%d", u, v)
	}
	g.pairs[key] = len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: weight})

	return nil
}

// has reports whether idx is a valid star index. Caller holds mu.
func (g *Graph) has(idx int) bool {
	return idx >= 0 && idx < len(g.stars)
}

// Len returns the number of stars.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.stars)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Star returns a copy of star idx.
func (g *Graph) Star(idx int) (Star, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.has(idx) {
		return Star{}, errors.Wrapf(ErrStarNotFound, "star %d", idx)
	}
	return g.stars[idx], nil
}

// Stars returns a copy of all stars in index order.
func (g *Graph) Stars() []Star {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Star, len(g.stars))
	copy(out, g.stars)

	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Weight returns the weight of edge u-v and whether it exists.
func (g *Graph) Weight(u, v int) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pos, ok := g.pairs[pairKey(u, v)]
	if !ok {
		return 0, false
	}
	return g.edges[pos].Weight, true
}
