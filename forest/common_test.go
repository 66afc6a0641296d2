package forest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travellermap/altroute/distgraph"
)

// Star 2 is improved by both lowered edges; it must be seeded once.
func TestRelaxLowered_SeedsEachNodeOnce(t *testing.T) {
	dist := []float64{0, 2, 10}
	parents := []int{-1, 0, 0}
	edges := []loweredEdge{
		{u: 0, v: 2, weight: 5},
		{u: 1, v: 2, weight: 1},
	}

	seeds := relaxLowered(dist, parents, edges)
	require.Equal(t, []int{2}, seeds)
	require.Equal(t, []float64{0, 2, 3}, dist)
	require.Equal(t, []int{-1, 0, 1}, parents)

	require.Empty(t, relaxLowered(dist, parents, edges))
}

func TestRepairTree_SharedEndpoint(t *testing.T) {
	g := distgraph.New(3)
	require.NoError(t, g.AddEdge(0, 1, 2))
	require.NoError(t, g.AddEdge(0, 2, 5))
	require.NoError(t, g.AddEdge(1, 2, 1))

	// labels as they stood before 0-2 and 1-2 were lowered
	dist := []float64{0, 2, 10}
	parents := []int{-1, 0, 0}

	edges, err := resolveEdges(g, []distgraph.Edge{{U: 0, V: 2}, {U: 1, V: 2}})
	require.NoError(t, err)

	changed, err := repairTree(g, 0, dist, parents, edges)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, []float64{0, 2, 3}, dist)
	require.Equal(t, []int{-1, 0, 1}, parents)
}
