package distgraph

import (
	"iter"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/travellermap/altroute/stargraph"
)

// Graph is the adjacency view over node indices 0..Len()-1.
type Graph struct {
	mu sync.RWMutex // guards adj, slot and minCost

	adj [][]arc

	// slot[key] = position of v in adj[u], for both (u,v) and (v,u)
	slot map[uint64]int

	// minCost[u] = smallest incident weight, +Inf when isolated
	minCost []float64
}

// New creates a Graph with n isolated nodes.
func New(n int) *Graph {
	if n < 0 {
		panic("distgraph: New(n < 0)")
	}
	g := &Graph{
		adj:     make([][]arc, n),
		slot:    make(map[uint64]int),
		minCost: make([]float64, n),
	}
	for i := range g.minCost {
		g.minCost[i] = math.Inf(1)
	}

	return g
}

// FromStarGraph builds the adjacency view of sg. Neighbors appear in the
// order sg.Edges() reports them.
// Complexity: O(V + E).
func FromStarGraph(sg *stargraph.Graph) (*Graph, error) {
	g := New(sg.Len())
	for _, e := range sg.Edges() {
		if err := g.AddEdge(e.U, e.V, e.Weight); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func dirKey(u, v int) uint64 {
	return uint64(uint32(u))<<32 | uint64(uint32(v))
}

// AddEdge inserts the undirected edge u-v.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if weight < 0 || math.IsNaN(weight) {
		return errors.Wrapf(ErrNegativeWeight, "edge %d-%d weight=%g", u, v, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.has(u) || !g.has(v) {
		return errors.Wrapf(ErrNodeNotFound, "edge %d-%d", u, v)
	}
	if _, ok := g.slot[dirKey(u, v)]; ok {
		return errors.Wrapf(ErrDuplicateEdge, "edge %d-%d", u, v)
	}

	g.slot[dirKey(u, v)] = len(g.adj[u])
	g.adj[u] = append(g.adj[u], arc{to: v, weight: weight})
	g.slot[dirKey(v, u)] = len(g.adj[v])
	g.adj[v] = append(g.adj[v], arc{to: u, weight: weight})

	g.minCost[u] = math.Min(g.minCost[u], weight)
	g.minCost[v] = math.Min(g.minCost[v], weight)

	return nil
}

func (g *Graph) has(u int) bool {
	return u >= 0 && u < len(g.adj)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adj)
}

// Neighbors yields (neighbor, weight) pairs of u in a stable order. An
// out-of-range u yields nothing. The read lock is held while iterating, so
// the loop body must not call LightenEdge.
func (g *Graph) Neighbors(u int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		g.mu.RLock()
		defer g.mu.RUnlock()

		if !g.has(u) {
			return
		}
		for _, a := range g.adj[u] {
			if !yield(a.to, a.weight) {
				return
			}
		}
	}
}

// Degree returns the number of edges incident to u.
func (g *Graph) Degree(u int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.has(u) {
		return 0
	}
	return len(g.adj[u])
}

// Weight returns the current weight of u-v.
func (g *Graph) Weight(u, v int) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pos, ok := g.slot[dirKey(u, v)]
	if !ok {
		return 0, errors.Wrapf(ErrEdgeNotFound, "edge %d-%d", u, v)
	}
	return g.adj[u][pos].weight, nil
}

// LightenEdge lowers the weight of u-v to weight, in both directions.
//
// Errors:
//   - ErrEdgeNotFound if u-v does not exist.
//   - ErrNegativeWeight if weight < 0.
//   - ErrWeightIncrease if weight is above the current weight; the graph is
//     left untouched.
//
// Complexity: O(1).
func (g *Graph) LightenEdge(u, v int, weight float64) error {
	if weight < 0 || math.IsNaN(weight) {
		return errors.Wrapf(ErrNegativeWeight, "edge %d-%d weight=%g", u, v, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	fwd, ok := g.slot[dirKey(u, v)]
	if !ok {
		return errors.Wrapf(ErrEdgeNotFound, "edge %d-%d", u, v)
	}
	bwd := g.slot[dirKey(v, u)]

	current := g.adj[u][fwd].weight
	if weight > current {
		return errors.Wrapf(ErrWeightIncrease, "edge %d-%d: %g -> %g", u, v, current, weight)
	}

	g.adj[u][fwd].weight = weight
	g.adj[v][bwd].weight = weight
	g.minCost[u] = math.Min(g.minCost[u], weight)
	g.minCost[v] = math.Min(g.minCost[v], weight)

	return nil
}

// MinCost returns the smallest weight incident to u, or +Inf if u is
// isolated or out of range. No path leaving u can be cheaper.
func (g *Graph) MinCost(u int) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.has(u) {
		return math.Inf(1)
	}
	return g.minCost[u]
}

// DistancesFromTarget returns, for each node in nodes, a lower bound on its
// shortest-path distance to target that uses only local connectivity:
//
//   - 0 for the target itself;
//   - +Inf when either end is isolated;
//   - otherwise minCost(u) + minCost(target), capped by the direct edge
//     weight when u and target are adjacent.
//
// Any path of two or more hops pays at least one edge at each end, and a
// one-hop path is the direct edge, so the value never exceeds the true
// distance.
// Complexity: O(len(nodes)).
func (g *Graph) DistancesFromTarget(nodes []int, target int) []float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]float64, len(nodes))
	if !g.has(target) {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out
	}

	tCost := g.minCost[target]
	for i, u := range nodes {
		switch {
		case u == target:
			out[i] = 0
		case !g.has(u):
			out[i] = math.Inf(1)
		default:
			floor := g.minCost[u] + tCost
			if pos, ok := g.slot[dirKey(u, target)]; ok {
				floor = math.Min(floor, g.adj[u][pos].weight)
			}
			out[i] = floor
		}
	}

	return out
}
