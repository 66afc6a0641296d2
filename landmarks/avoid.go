package landmarks

import (
	"math"

	"github.com/travellermap/altroute/dijkstra"
)

// CalcWeights returns, for every node, the relative slack of the current
// lower bound against the true distance from the tree root:
//
//	w[v] = (dist[v] − lower[v]) / dist[v]
//
// The weight is 0 where dist[v] is 0 or +Inf, and it is clamped to 0 where
// the bound is not below the distance. Panics if the slices differ in length.
func CalcWeights(dist, lower []float64) []float64 {
	if len(dist) != len(lower) {
		panic("landmarks: CalcWeights length mismatch")
	}
	w := make([]float64, len(dist))
	for v, d := range dist {
		if d == 0 || math.IsInf(d, 1) {
			continue
		}
		if gap := d - lower[v]; gap > 0 {
			w[v] = gap / d
		}
	}

	return w
}

// children inverts a parent array. Lists are in ascending node order.
func children(parents []int) [][]int {
	out := make([][]int, len(parents))
	for v, p := range parents {
		if p != dijkstra.NoParent {
			out[p] = append(out[p], v)
		}
	}
	return out
}

// CalcSizes sums weights over every shortest-path subtree: sizes[u] is the
// total weight of u and all its descendants. A subtree that already holds
// an excluded node (a chosen landmark) is covered, so every excluded node
// and each of its ancestors gets size 0.
//
// Complexity: O(V).
func CalcSizes(weights []float64, parents []int, excluded map[int]bool) []float64 {
	if len(weights) != len(parents) {
		panic("landmarks: CalcSizes length mismatch")
	}
	n := len(parents)
	kids := children(parents)

	// Breadth-first order from every root; reversed, it visits children first.
	order := make([]int, 0, n)
	for v, p := range parents {
		if p == dijkstra.NoParent {
			order = append(order, v)
		}
	}
	for i := 0; i < len(order); i++ {
		order = append(order, kids[order[i]]...)
	}

	sizes := make([]float64, n)
	copy(sizes, weights)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if p := parents[v]; p != dijkstra.NoParent {
			sizes[p] += sizes[v]
		}
	}

	covered := make([]bool, n)
	for v := range excluded {
		for u := v; u >= 0 && u < n && !covered[u]; u = parents[u] {
			covered[u] = true
			sizes[u] = 0
		}
	}

	return sizes
}

// TraverseSizes walks down from root, always into the child with the largest
// positive size, and returns the node where no child has a positive size.
// Ties go to the lowest node index.
func TraverseSizes(sizes []float64, root int, parents []int) int {
	kids := children(parents)
	u := root
	for {
		next, best := -1, 0.0
		for _, v := range kids[u] {
			if sizes[v] > best {
				next, best = v, sizes[v]
			}
		}
		if next < 0 {
			return u
		}
		u = next
	}
}
