// Package builder produces deterministic star graphs for tests, benchmarks
// and the CLI demo.
//
// A build is a list of Constructors applied in order to a fresh
// stargraph.Graph; components are labelled once all of them have run:
//
//	g, err := builder.BuildGraph(nil,
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithUniformWeight(1, 4)},
//		builder.HexField(6, 2),
//	)
//
// Constructors:
//
//   - Line(n):                  n stars on the q axis, one parsec apart.
//   - HexField(radius, maxJump): every hex within radius of the origin, linked
//     to every other hex at most maxJump away.
//   - Scatter(n, span, maxJump): n distinct random hexes within span of the
//     origin, linked the same way. Requires an RNG (WithSeed or WithRand).
//
// Options choose the star naming scheme (NameFn), the jump cost (WeightFn)
// and the world-trade-number of each star (WTNFn). Option constructors panic
// on meaningless arguments; constructors return errors wrapping the package
// sentinels.
//
// The same options, seed and constructor order always produce the same
// graph: stars in the same index order, edges in the same insertion order.
package builder
