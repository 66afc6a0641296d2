// Package dijkstra_test contains unit tests for the Dijkstra implementation.
// These tests validate input checking, distances and parents on small graphs,
// deterministic tie-breaking, distance caps, and in-place tree repair.
package dijkstra_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travellermap/altroute/dijkstra"
	"github.com/travellermap/altroute/distgraph"
)

// build creates an n-node distance graph from (u, v, w) triples.
func build(t *testing.T, n int, edges [][3]float64) *distgraph.Graph {
	t.Helper()
	g := distgraph.New(n)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(int(e[0]), int(e[1]), e[2]))
	}
	return g
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_NilGraph(t *testing.T) {
	_, err := dijkstra.Dijkstra(nil, 0, nil)
	if err != dijkstra.ErrNilGraph {
		t.Fatalf("Expected ErrNilGraph, got %v", err)
	}
}

func TestDijkstra_SourceNotFound(t *testing.T) {
	g := distgraph.New(2)
	_, err := dijkstra.Dijkstra(g, 5, dijkstra.NewLabels(2, 5))
	if !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound, got %v", err)
	}
}

func TestDijkstra_EmptyGraph_ReturnsVertexNotFound(t *testing.T) {
	g := distgraph.New(0)
	_, err := dijkstra.Dijkstra(g, 0, nil)
	if !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Errorf("Expected ErrVertexNotFound for empty graph, got %v", err)
	}
}

func TestDijkstra_SeedNotFound(t *testing.T) {
	g := distgraph.New(2)
	_, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(2, 0), dijkstra.WithSeeds(-1))
	if !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound, got %v", err)
	}
}

func TestDijkstra_LabelLengthMismatch(t *testing.T) {
	g := distgraph.New(3)
	_, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(2, 0))
	if !errors.Is(err, dijkstra.ErrLabelLength) {
		t.Fatalf("Expected ErrLabelLength for labels, got %v", err)
	}

	_, err = dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(3, 0), dijkstra.WithParents(make([]int, 1)))
	if !errors.Is(err, dijkstra.ErrLabelLength) {
		t.Fatalf("Expected ErrLabelLength for parents, got %v", err)
	}
}

func TestDijkstra_WithMaxDistancePanicsOnNegative(t *testing.T) {
	require.Panics(t, func() {
		dijkstra.WithMaxDistance(-1)
	})
	require.Panics(t, func() {
		dijkstra.WithMaxDistance(math.NaN())
	})
	require.NotPanics(t, func() {
		dijkstra.WithMaxDistance(0)
	})
}

// ------------------------------------------------------------------------
// 2. Basic Functionality: Small graphs, distances and parents.
// ------------------------------------------------------------------------

func TestDijkstra_SimpleTriangle(t *testing.T) {
	// Graph: 0-1(1), 1-2(2), 0-2(5).
	g := build(t, 3, [][3]float64{{0, 1, 1}, {1, 2, 2}, {0, 2, 5}})

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(3, 0))
	require.NoError(t, err)

	// Distance from 0 to 2 should be 3 via 0→1→2.
	require.Equal(t, []float64{0, 1, 3}, res.Distances)
	require.Equal(t, []int{dijkstra.NoParent, 0, 1}, res.Parents)
	require.Equal(t, 3, res.Reached)
}

func TestDijkstra_ChainWithBranch(t *testing.T) {
	// Graph:
	// 0-1-2-3-4
	//         |
	//         5-6
	g := build(t, 7, [][3]float64{
		{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1}, {3, 5, 1}, {5, 6, 1},
	})

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(7, 0))
	require.NoError(t, err)

	expected := []float64{0, 1, 2, 3, 4, 4, 5}
	for v, want := range expected {
		if got := res.Distances[v]; got != want {
			t.Errorf("dist[%d] = %g; want %g", v, got, want)
		}
	}
	if res.Parents[6] != 5 || res.Parents[5] != 3 || res.Parents[4] != 3 {
		t.Errorf("Unexpected predecessors: %v", res.Parents)
	}
}

func TestDijkstra_UnreachableKeepsInfinity(t *testing.T) {
	// Two components: {0,1} and {2,3}.
	g := build(t, 4, [][3]float64{{0, 1, 2}, {2, 3, 1}})

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(4, 0))
	require.NoError(t, err)

	require.True(t, math.IsInf(res.Distances[2], 1))
	require.True(t, math.IsInf(res.Distances[3], 1))
	require.Equal(t, dijkstra.NoParent, res.Parents[2])
	require.Equal(t, dijkstra.NoParent, res.Parents[3])
	require.Equal(t, 2, res.Reached)
}

func TestDijkstra_SingleVertex_ReturnsZero(t *testing.T) {
	g := distgraph.New(1)

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(1, 0))
	require.NoError(t, err)
	require.Equal(t, []float64{0}, res.Distances)
	require.Equal(t, []int{dijkstra.NoParent}, res.Parents)
	require.Equal(t, 1, res.Reached)
}

func TestDijkstra_ZeroWeightEdge(t *testing.T) {
	g := build(t, 3, [][3]float64{{0, 1, 0}, {1, 2, 4}})

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(3, 0))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 4}, res.Distances)
	require.Equal(t, 1, res.Parents[2])
}

// ------------------------------------------------------------------------
// 3. Determinism: equal-cost paths resolve to the first discovered parent.
// ------------------------------------------------------------------------

func TestDijkstra_TieKeepsFirstDiscoveredParent(t *testing.T) {
	// Square 0-1-3 and 0-2-3, every edge weight 1. Edge 0-1 is inserted
	// first, so 1 is discovered (and settled) before 2 and claims node 3.
	g := build(t, 4, [][3]float64{{0, 1, 1}, {0, 2, 1}, {1, 3, 1}, {2, 3, 1}})

	for i := 0; i < 10; i++ {
		res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(4, 0))
		require.NoError(t, err)
		require.Equal(t, 2.0, res.Distances[3])
		require.Equal(t, 1, res.Parents[3], "run %d", i)
	}
}

// ------------------------------------------------------------------------
// 4. MaxDistance: nodes past the cap are not explored.
// ------------------------------------------------------------------------

func TestDijkstra_MaxDistance(t *testing.T) {
	g := build(t, 4, [][3]float64{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}})

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(4, 0), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	require.Equal(t, 2.0, res.Distances[2])
	require.True(t, math.IsInf(res.Distances[3], 1))
}

// ------------------------------------------------------------------------
// 5. Repair: seeded re-run after a weight decrease matches a rebuild.
// ------------------------------------------------------------------------

func TestDijkstra_SeededRepairMatchesRebuild(t *testing.T) {
	// 0-1(4), 1-2(4), 0-3(1), 3-4(10), 4-2(1)
	g := build(t, 5, [][3]float64{{0, 1, 4}, {1, 2, 4}, {0, 3, 1}, {3, 4, 10}, {4, 2, 1}})

	tree, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(5, 0))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 4, 8, 1, 9}, tree.Distances)

	// Lower 3-4 from 10 to 2; node 4 now sits at 3 and pulls 2 down to 4.
	require.NoError(t, g.LightenEdge(3, 4, 2))
	dist, parents := tree.Distances, tree.Parents
	dist[4] = dist[3] + 2
	parents[4] = 3

	repaired, err := dijkstra.Dijkstra(g, 0, dist,
		dijkstra.WithParents(parents),
		dijkstra.WithSeeds(4),
	)
	require.NoError(t, err)

	fresh, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(5, 0))
	require.NoError(t, err)
	require.Equal(t, fresh.Distances, repaired.Distances)
	require.Equal(t, fresh.Parents, repaired.Parents)
	require.Equal(t, 4, repaired.Parents[2])
}

func TestDijkstra_LabelsUpdatedInPlace(t *testing.T) {
	g := build(t, 2, [][3]float64{{0, 1, 3}})
	labels := dijkstra.NewLabels(2, 0)

	res, err := dijkstra.Dijkstra(g, 0, labels)
	require.NoError(t, err)
	require.Equal(t, 3.0, labels[1])
	require.Equal(t, &labels[0], &res.Distances[0])
}
