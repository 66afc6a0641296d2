package stargraph

import (
	"sort"

	"github.com/pkg/errors"
)

// CalculateComponents labels every star with its connected-component id and
// returns the size of each component.
//
// Stars are scanned in index order; each unlabelled star starts a new
// breadth-first search, so ids are dense (0, 1, 2, ...) and ordered by their
// smallest member. Isolated stars become singleton components.
//
// Time:   O(V + E).
// Memory: O(V + E) for the adjacency lists and the queue.
func (g *Graph) CalculateComponents() map[int]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.stars)
	adj := make([][]int, n)
	for _, e := range g.edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	sizes := make(map[int]int)
	seen := make([]bool, n)
	next := 0
	for i0 := 0; i0 < n; i0++ {
		if seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			g.stars[u].Component = next
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sizes[next] = len(queue)
		next++
	}

	return sizes
}

// SetComponent assigns a component id chosen by the caller.
func (g *Graph) SetComponent(idx, component int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.has(idx) {
		return errors.Wrapf(ErrStarNotFound, "star %d", idx)
	}
	g.stars[idx].Component = component

	return nil
}

// Components returns the component id of every star, indexed by star.
func (g *Graph) Components() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, len(g.stars))
	for i, s := range g.stars {
		out[i] = s.Component
	}

	return out
}

// ComponentSizes returns component id → number of stars.
// Returns ErrUnassignedComponent if any star is still unlabelled.
func (g *Graph) ComponentSizes() (map[int]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sizes := make(map[int]int)
	for _, s := range g.stars {
		if s.Component == NoComponent {
			return nil, errors.Wrapf(ErrUnassignedComponent, "star %d", s.Index)
		}
		sizes[s.Component]++
	}

	return sizes, nil
}

// ComponentMembers groups star indices by component id. Members are in
// ascending index order.
func (g *Graph) ComponentMembers() map[int][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	members := make(map[int][]int)
	for _, s := range g.stars {
		members[s.Component] = append(members[s.Component], s.Index)
	}

	return members
}

// SortedKeys returns the keys of a component map in ascending order.
func SortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
