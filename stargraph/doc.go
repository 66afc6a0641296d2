// Package stargraph holds the in-memory model that route generation hands to
// the landmark engine: star systems (nodes) with axial hex coordinates, a
// world-trade-number (WTN) and a connected-component id, joined by undirected
// jump links carrying a non-negative cost.
//
// Nodes are dense integers 0..N-1 in insertion order. Every enumeration the
// package exposes (Stars, Edges, Components) is deterministic, so landmark
// selection and route search stay reproducible between runs.
//
// Concurrency:
//
//   - All methods are safe for concurrent use; a single sync.RWMutex guards
//     stars, edges and the pair index.
//   - Edge weights are immutable here. Route-reuse discounting happens on the
//     distgraph view built from this graph.
//
// Components:
//
//   - CalculateComponents labels every star by breadth-first search, in
//     ascending index order, so component 0 always contains star 0.
//   - Callers that already know their components may assign them with
//     SetComponent instead.
//
// Loading:
//
//   - Load decodes a YAML document (stars + edges) and validates it; it is
//     used by the altroute CLI and by fixtures.
package stargraph
