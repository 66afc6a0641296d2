// Package altroute is an ALT (A*, Landmarks, Triangle inequality) engine
// for jump routes between star systems.
//
// It picks a handful of landmark stars per connected component, keeps one
// shortest-path tree per landmark, and answers admissible lower bounds
//
//	lb(s, t) = max over landmarks L of |d(s, L) − d(t, L)|
//
// that guide A* route searches. When routes are reused and their jumps get
// cheaper, trees are repaired in place instead of rebuilt.
//
// Packages:
//
//	stargraph/    stars with axial hex coordinates and WTN, jump links, components, YAML files
//	distgraph/    index-based weighted view the shortest-path code runs on
//	dijkstra/     label-seeded Dijkstra used for tree builds and repairs
//	forest/       approximate shortest-path forests (reference and unified backends)
//	landmarks/    landmark schemes: q, r, s and WTN extremes, triaxial with avoid
//	astar/        route search, parallel batches, route-reuse commits
//	builder/      deterministic star graph fixtures
//	config/       YAML engine settings
//	metrics/      Prometheus collectors
//	cmd/altroute  command line front end
//
// Quick example:
//
//	    0───1───2───3        landmark 3, unit jumps
//
//	d(·, 3) = 3 2 1 0   ⇒   lb(0, 2) = |3 − 1| = 2 = d(0, 2)
package altroute
