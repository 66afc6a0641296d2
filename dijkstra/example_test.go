package dijkstra_test

import (
	"fmt"

	"github.com/travellermap/altroute/dijkstra"
	"github.com/travellermap/altroute/distgraph"
)

// ExampleDijkstra_triangle computes distances and the shortest-path tree of
// a three-star triangle.
func ExampleDijkstra_triangle() {
	g := distgraph.New(3)
	_ = g.AddEdge(0, 1, 1)
	_ = g.AddEdge(1, 2, 2)
	_ = g.AddEdge(0, 2, 5)

	res, err := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(g.Len(), 0))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Distances, res.Parents)
	// Output: [0 1 3] [-1 0 1]
}

// ExampleWithSeeds repairs an existing tree after an edge got cheaper: the
// improved endpoint is relabelled and re-seeded, and only what it improves
// is revisited.
func ExampleWithSeeds() {
	g := distgraph.New(4)
	_ = g.AddEdge(0, 1, 4)
	_ = g.AddEdge(1, 2, 4)
	_ = g.AddEdge(0, 3, 1)
	_ = g.AddEdge(3, 2, 10)

	res, _ := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(g.Len(), 0))
	fmt.Println(res.Distances)

	_ = g.LightenEdge(3, 2, 2)
	dist, parents := res.Distances, res.Parents
	dist[2], parents[2] = dist[3]+2, 3

	res, _ = dijkstra.Dijkstra(g, 0, dist, dijkstra.WithParents(parents), dijkstra.WithSeeds(2))
	fmt.Println(res.Distances, res.Parents)
	// Output:
	// [0 4 8 1]
	// [0 4 3 1] [-1 0 3 0]
}

// ExampleWithMaxDistance stops exploring beyond a radius.
func ExampleWithMaxDistance() {
	g := distgraph.New(4)
	_ = g.AddEdge(0, 1, 2)
	_ = g.AddEdge(1, 2, 2)
	_ = g.AddEdge(2, 3, 2)

	res, _ := dijkstra.Dijkstra(g, 0, dijkstra.NewLabels(g.Len(), 0), dijkstra.WithMaxDistance(4))
	fmt.Println(res.Distances, res.Reached)
	// Output: [0 2 4 +Inf] 3
}
