// Package forest maintains one shortest-path tree per landmark and answers
// ALT (A*, Landmarks, Triangle inequality) lower-bound queries from them.
//
// For two nodes s and t in the same component and every landmark L of that
// component, the triangle inequality gives
//
//	dist(s, t) ≥ |dist(s, L) − dist(t, L)|
//
// so the maximum over the component's landmarks is an admissible bound. The
// forest divides it by (1 + epsilon): epsilon = 0 keeps the raw bound, a
// positive epsilon trades tightness for slack.
//
// Lifecycle:
//
//   - New builds one Dijkstra tree per unique landmark in the seeds.
//   - ExpandForest adds trees for new landmarks without touching existing ones.
//   - After lowering edge weights on the distgraph.Graph, UpdateEdges repairs
//     every tree in place by decrease-key propagation. The repaired distances
//     equal those of a from-scratch rebuild.
//
// Backends:
//
//   - Reference keeps each tree in its own slices and evaluates everything
//     sequentially. It is the correctness oracle.
//   - Unified keeps all trees in one column-major slab, builds and repairs
//     trees on a bounded worker pool, and evaluates bulk bounds one tree
//     column at a time across the node vector.
//
// New picks the backend chosen once at process start (see DetectedBackend);
// NewWithBackend forces one.
//
// Unreachable pairs (different components) are +Inf. Queries take a read
// lock and updates take the write lock, so many searches may share a forest
// as long as weight commits are serialized against them.
package forest
