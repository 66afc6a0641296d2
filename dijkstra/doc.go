// Package dijkstra implements the single-source shortest-path primitive that
// landmark trees, landmark selection and route search are built on.
//
// Overview:
//
//   - Nodes are dense integers 0..N-1 and weights are non-negative float64s,
//     read through the small Graph interface (distgraph.Graph satisfies it).
//   - The caller supplies the distance labels. A fresh run starts from
//     NewLabels (source = 0, all else +Inf); a tree repair starts from the
//     tree's existing labels and parents plus the nodes whose labels just
//     dropped (WithParents, WithSeeds).
//   - Labels and parents are updated in place, so a repaired tree never has
//     to be copied.
//
// Determinism:
//
//   - Heap entries are ordered by (distance, push order). Among equal
//     distances the node discovered first settles first, and a label is only
//     replaced by a strictly smaller one. Two runs over the same graph always
//     produce the same parents, which keeps landmark choice reproducible.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) worst-case heap entries under lazy decrease-key.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:       the graph is nil.
//   - ErrVertexNotFound: the source or a seed is out of range.
//   - ErrLabelLength:    labels or parents do not have one entry per node.
//   - ErrNegativeWeight: a negative weight was met while relaxing.
//   - ErrBadMaxDistance: (via panic) WithMaxDistance got a negative value.
//
// Thread safety:
//
//   - Dijkstra only reads the graph. Many runs may share one graph as long as
//     nobody lowers weights concurrently.
package dijkstra
