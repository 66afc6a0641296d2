// Package astar runs point-to-point route searches over a distgraph.Graph
// using an ALT forest as the A* heuristic.
//
// Search is exact: forest bounds never exceed the true distance, and a node
// is re-opened whenever a cheaper way to it turns up, so the returned
// Distance always equals a plain Dijkstra run. Unreachable targets come
// back with Distance +Inf and no error.
//
// Batch fans many searches out over a bounded worker pool. Searches only
// read the graph and the forest.
//
// Commit is the route-reuse write: it discounts the edges of a found path on
// the graph and repairs the forest in place. Callers serialize it against
// running searches.
package astar
