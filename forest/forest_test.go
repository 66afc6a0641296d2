package forest_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/travellermap/altroute/dijkstra"
	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/forest"
	"github.com/travellermap/altroute/metrics"
)

// fixture is a distance graph with its component labels.
type fixture struct {
	g     *distgraph.Graph
	comps []int
}

// fiveNode is the repair scenario graph, one component:
//
//	0-1(4), 1-2(4), 0-3(1), 3-4(10), 4-2(1), 1-4(6)
func fiveNode(t *testing.T) fixture {
	t.Helper()
	g := distgraph.New(5)
	for _, e := range [][3]float64{{0, 1, 4}, {1, 2, 4}, {0, 3, 1}, {3, 4, 10}, {4, 2, 1}, {1, 4, 6}} {
		require.NoError(t, g.AddEdge(int(e[0]), int(e[1]), e[2]))
	}
	return fixture{g: g, comps: make([]int, 5)}
}

// twoIslands is {0,1,2} (component 0) and {3,4} (component 1) plus the
// isolated node 5 (component 2).
func twoIslands(t *testing.T) fixture {
	t.Helper()
	g := distgraph.New(6)
	for _, e := range [][3]float64{{0, 1, 2}, {1, 2, 3}, {3, 4, 5}} {
		require.NoError(t, g.AddEdge(int(e[0]), int(e[1]), e[2]))
	}
	return fixture{g: g, comps: []int{0, 0, 0, 1, 1, 2}}
}

// scatter is a connected random graph: a spanning path plus extra chords.
func scatter(t *testing.T, n int, seed int64) fixture {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := distgraph.New(n)
	for i := 1; i < n; i++ {
		require.NoError(t, g.AddEdge(i-1, i, 1+float64(rng.Intn(20))))
	}
	for k := 0; k < 2*n; k++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		if _, err := g.Weight(u, v); err == nil {
			continue
		}
		require.NoError(t, g.AddEdge(u, v, 1+float64(rng.Intn(40))))
	}
	return fixture{g: g, comps: make([]int, n)}
}

func exact(t *testing.T, g *distgraph.Graph, source int) []float64 {
	t.Helper()
	res, err := dijkstra.Dijkstra(g, source, dijkstra.NewLabels(g.Len(), source))
	require.NoError(t, err)
	return res.Distances
}

// ForestSuite runs the same checks against every backend.
type ForestSuite struct {
	suite.Suite
	backend forest.Backend
}

func (s *ForestSuite) build(fx fixture, seeds []forest.Seeds, opts ...forest.Option) forest.ApproximateForest {
	opts = append([]forest.Option{forest.WithWorkers(3)}, opts...)
	f, err := forest.NewWithBackend(s.backend, fx.g, fx.comps, seeds, opts...)
	s.Require().NoError(err)
	s.Require().Equal(s.backend, f.Backend())
	return f
}

// TestAdmissible checks bound ≤ true distance on every pair.
func (s *ForestSuite) TestAdmissible() {
	fx := scatter(s.T(), 40, 7)
	f := s.build(fx, []forest.Seeds{{0: 0}, {0: 39}, {0: 17}})

	for src := 0; src < 40; src++ {
		truth := exact(s.T(), fx.g, src)
		for dst := 0; dst < 40; dst++ {
			s.Require().LessOrEqual(f.LowerBound(src, dst), truth[dst]+1e-9, "pair %d→%d", src, dst)
		}
	}
}

// TestSymmetric checks bound(s,t) == bound(t,s).
func (s *ForestSuite) TestSymmetric() {
	fx := scatter(s.T(), 25, 3)
	f := s.build(fx, []forest.Seeds{{0: 4}, {0: 20}}, forest.WithEpsilon(0.2))

	for a := 0; a < 25; a++ {
		for b := 0; b < 25; b++ {
			s.Require().Equal(f.LowerBound(a, b), f.LowerBound(b, a))
		}
	}
}

// TestLandmarkBoundIsExact: with the target as landmark the bound is the distance.
func (s *ForestSuite) TestLandmarkBoundIsExact() {
	fx := fiveNode(s.T())
	f := s.build(fx, []forest.Seeds{{0: 2}})

	truth := exact(s.T(), fx.g, 2)
	for v := 0; v < 5; v++ {
		s.Require().Equal(truth[v], f.LowerBound(v, 2))
	}
}

// TestEpsilonLoosens checks the raw bound is divided by 1+eps.
func (s *ForestSuite) TestEpsilonLoosens() {
	fx := fiveNode(s.T())
	tight := s.build(fx, []forest.Seeds{{0: 0}})
	loose := s.build(fx, []forest.Seeds{{0: 0}}, forest.WithEpsilon(0.25))

	s.Require().Equal(0.25, loose.Epsilon())
	// dist(0,2) = 8 via 0-1-2.
	s.Require().Equal(8.0, tight.LowerBound(0, 2))
	s.Require().InDelta(8.0/1.25, loose.LowerBound(0, 2), 1e-12)
}

// TestComponents checks +Inf across components and 0 on the diagonal.
func (s *ForestSuite) TestComponents() {
	fx := twoIslands(s.T())
	f := s.build(fx, []forest.Seeds{{0: 0, 1: 3}})

	s.Require().Equal(2, f.NumTrees())
	s.Require().Equal([]int{0, 3}, f.Landmarks())
	s.Require().True(math.IsInf(f.LowerBound(0, 3), 1))
	s.Require().True(math.IsInf(f.LowerBound(4, 5), 1))
	s.Require().Equal(0.0, f.LowerBound(5, 5))
	s.Require().Equal(5.0, f.LowerBound(4, 3))
	s.Require().Equal(5.0, f.LowerBound(0, 2))

	s.Require().Equal(3.0, f.LowerBound(1, 2))
	s.Require().True(math.IsInf(f.LowerBound(-1, 0), 1))
}

// TestUnreachableFromLandmark: components that are not really connected
// still answer +Inf rather than a wrong finite bound.
func (s *ForestSuite) TestUnreachableFromLandmark() {
	fx := twoIslands(s.T())
	fx.comps = make([]int, 6)
	f := s.build(fx, []forest.Seeds{{0: 0}})

	s.Require().True(math.IsInf(f.LowerBound(1, 3), 1))
	s.Require().Equal(0.0, f.LowerBound(3, 4))
}

// TestBulkMatchesPairwise compares LowerBoundBulk with LowerBound.
func (s *ForestSuite) TestBulkMatchesPairwise() {
	fx := twoIslands(s.T())
	f := s.build(fx, []forest.Seeds{{0: 0, 1: 4}, {0: 2}})

	nodes := []int{0, 1, 2, 3, 4, 5, 7, -2}
	for target := 0; target < 6; target++ {
		bulk := f.LowerBoundBulk(nodes, target)
		s.Require().Len(bulk, len(nodes))
		for i, v := range nodes {
			s.Require().Equal(f.LowerBound(v, target), bulk[i], "node %d target %d", v, target)
		}
	}
	for _, b := range f.LowerBoundBulk(nodes, 99) {
		s.Require().True(math.IsInf(b, 1))
	}
}

// TestExpandTightens checks bounds never drop when landmarks are added.
func (s *ForestSuite) TestExpandTightens() {
	fx := scatter(s.T(), 30, 11)
	f := s.build(fx, []forest.Seeds{{0: 0}})

	before := make([][]float64, 30)
	for t := 0; t < 30; t++ {
		before[t] = f.LowerBoundBulk(seq(30), t)
	}
	first, err := f.Tree(0)
	s.Require().NoError(err)

	s.Require().NoError(f.ExpandForest(forest.Seeds{0: 29}, forest.Seeds{0: 12}))
	s.Require().Equal([]int{0, 29, 12}, f.Landmarks())

	for t := 0; t < 30; t++ {
		after := f.LowerBoundBulk(seq(30), t)
		for v := range after {
			s.Require().GreaterOrEqual(after[v], before[t][v])
		}
	}

	again, err := f.Tree(0)
	s.Require().NoError(err)
	s.Require().Equal(first, again)
}

// TestExpandSkipsDuplicates checks a landmark is only built once.
func (s *ForestSuite) TestExpandSkipsDuplicates() {
	fx := fiveNode(s.T())
	f := s.build(fx, []forest.Seeds{{0: 1}, {0: 1}})
	s.Require().Equal(1, f.NumTrees())

	s.Require().NoError(f.ExpandForest(forest.Seeds{0: 1}))
	s.Require().NoError(f.ExpandForest())
	s.Require().Equal(1, f.NumTrees())
}

// TestUpdateEdgesMatchesRebuild is the halving scenario: two landmarks on
// the five-node component, one edge halved, repair equals rebuild.
func (s *ForestSuite) TestUpdateEdgesMatchesRebuild() {
	fx := fiveNode(s.T())
	seeds := []forest.Seeds{{0: 0}, {0: 2}}
	f := s.build(fx, seeds)

	s.Require().NoError(fx.g.LightenEdge(3, 4, 5))
	s.Require().NoError(f.UpdateEdges([]distgraph.Edge{{U: 3, V: 4}}))

	fresh := s.build(fx, seeds)
	for i := 0; i < 2; i++ {
		got, err := f.Tree(i)
		s.Require().NoError(err)
		want, err := fresh.Tree(i)
		s.Require().NoError(err)
		s.Require().Equal(want.Distances, got.Distances, "tree %d", i)
	}

	t0, err := f.Tree(0)
	s.Require().NoError(err)
	s.Require().Equal([]float64{0, 4, 7, 1, 6}, t0.Distances)
	s.Require().Equal(3, t0.Parents[4])
	s.Require().Equal(4, t0.Parents[2])
}

// TestUpdateEdgesRandomSequence repeats lighten+update and checks against
// a rebuild after each step.
func (s *ForestSuite) TestUpdateEdgesRandomSequence() {
	fx := scatter(s.T(), 60, 5)
	seeds := []forest.Seeds{{0: 0}, {0: 59}, {0: 30}}
	f := s.build(fx, seeds)

	rng := rand.New(rand.NewSource(99))
	for step := 0; step < 20; step++ {
		var changed []distgraph.Edge
		for k := 0; k < 3; k++ {
			u := rng.Intn(59)
			w, err := fx.g.Weight(u, u+1)
			s.Require().NoError(err)
			s.Require().NoError(fx.g.LightenEdge(u, u+1, w/2))
			changed = append(changed, distgraph.Edge{U: u + 1, V: u})
		}
		s.Require().NoError(f.UpdateEdges(changed))

		for i, root := range f.Landmarks() {
			tr, err := f.Tree(i)
			s.Require().NoError(err)
			s.Require().Equal(exact(s.T(), fx.g, root), tr.Distances, "step %d tree %d", step, i)
		}
	}
}

// TestUpdateEdgesNoop leaves the trees alone when nothing improves.
func (s *ForestSuite) TestUpdateEdgesNoop() {
	fx := fiveNode(s.T())
	f := s.build(fx, []forest.Seeds{{0: 0}})
	before, err := f.Tree(0)
	s.Require().NoError(err)

	s.Require().NoError(f.UpdateEdges([]distgraph.Edge{{U: 1, V: 4}}))
	s.Require().NoError(f.UpdateEdges(nil))

	after, err := f.Tree(0)
	s.Require().NoError(err)
	s.Require().Equal(before, after)
}

// TestErrors covers construction and update failures.
func (s *ForestSuite) TestErrors() {
	fx := twoIslands(s.T())

	_, err := forest.NewWithBackend(s.backend, nil, nil, nil)
	s.Require().ErrorIs(err, forest.ErrNilGraph)

	_, err = forest.NewWithBackend(s.backend, fx.g, []int{0}, nil)
	s.Require().ErrorIs(err, forest.ErrComponentLength)

	_, err = forest.NewWithBackend(s.backend, fx.g, fx.comps, []forest.Seeds{{0: 9}})
	s.Require().ErrorIs(err, forest.ErrLandmarkNotFound)

	_, err = forest.NewWithBackend(s.backend, fx.g, fx.comps, []forest.Seeds{{1: 0}})
	s.Require().ErrorIs(err, forest.ErrComponentMismatch)

	f := s.build(fx, []forest.Seeds{{0: 0}})
	err = f.UpdateEdges([]distgraph.Edge{{U: 0, V: 4}})
	s.Require().ErrorIs(err, distgraph.ErrEdgeNotFound)

	_, err = f.Tree(1)
	s.Require().ErrorIs(err, forest.ErrTreeIndex)

	// A failed expansion leaves the forest as it was.
	err = f.ExpandForest(forest.Seeds{0: 1}, forest.Seeds{1: 2})
	s.Require().ErrorIs(err, forest.ErrComponentMismatch)
	s.Require().Equal(1, f.NumTrees())
}

// TestEmpty checks an empty graph yields an empty forest.
func (s *ForestSuite) TestEmpty() {
	f := s.build(fixture{g: distgraph.New(0)}, nil)
	s.Require().Equal(0, f.NumTrees())
	s.Require().Empty(f.Landmarks())
	s.Require().Empty(f.LowerBoundBulk(nil, 0))
}

// TestMetrics checks the collector sees builds, repairs and queries.
func (s *ForestSuite) TestMetrics() {
	c := metrics.NewCollector("test")
	fx := fiveNode(s.T())
	f := s.build(fx, []forest.Seeds{{0: 0}, {0: 2}}, forest.WithMetrics(c))

	s.Require().NoError(fx.g.LightenEdge(3, 4, 5))
	s.Require().NoError(f.UpdateEdges([]distgraph.Edge{{U: 3, V: 4}}))
	_ = f.LowerBound(0, 4)
	_ = f.LowerBoundBulk([]int{0, 1, 2}, 4)

	label := string(s.backend)
	s.Require().Equal(2.0, testutil.ToFloat64(c.TreesBuilt.WithLabelValues(label)))
	s.Require().Equal(2.0, testutil.ToFloat64(c.TreesRepaired.WithLabelValues(label)))
	s.Require().Equal(1.0, testutil.ToFloat64(c.EdgesUpdated))
	s.Require().Equal(4.0, testutil.ToFloat64(c.BoundQueries.WithLabelValues(label)))
}

func TestReferenceSuite(t *testing.T) {
	suite.Run(t, &ForestSuite{backend: forest.BackendReference})
}

func TestUnifiedSuite(t *testing.T) {
	suite.Run(t, &ForestSuite{backend: forest.BackendUnified})
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// TestUnifiedMatchesReference uses the reference backend as oracle on a
// graph big enough to exercise the chunked bulk path.
func TestUnifiedMatchesReference(t *testing.T) {
	fx := scatter(t, 5000, 42)
	seeds := []forest.Seeds{{0: 0}, {0: 4999}, {0: 2500}, {0: 1234}}

	ref, err := forest.NewReference(fx.g, fx.comps, seeds)
	require.NoError(t, err)
	uni, err := forest.NewUnified(fx.g, fx.comps, seeds, forest.WithWorkers(4))
	require.NoError(t, err)
	require.Equal(t, ref.Landmarks(), uni.Landmarks())

	nodes := seq(5000)
	for _, target := range []int{0, 77, 2600, 4999} {
		require.Equal(t, ref.LowerBoundBulk(nodes, target), uni.LowerBoundBulk(nodes, target))
	}

	edges := []distgraph.Edge{{U: 10, V: 11}, {U: 3000, V: 3001}}
	for _, e := range edges {
		w, err := fx.g.Weight(e.U, e.V)
		require.NoError(t, err)
		require.NoError(t, fx.g.LightenEdge(e.U, e.V, w/4))
	}
	require.NoError(t, ref.UpdateEdges(edges))
	require.NoError(t, uni.UpdateEdges(edges))

	for i := range seeds {
		want, err := ref.Tree(i)
		require.NoError(t, err)
		got, err := uni.Tree(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, ref.LowerBoundBulk(nodes, 4000), uni.LowerBoundBulk(nodes, 4000))
}

func TestParseBackend(t *testing.T) {
	cases := map[string]forest.Backend{
		"":           forest.BackendAuto,
		"auto":       forest.BackendAuto,
		" Reference": forest.BackendReference,
		"UNIFIED":    forest.BackendUnified,
	}
	for in, want := range cases {
		got, err := forest.ParseBackend(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := forest.ParseBackend("numpy")
	require.True(t, errors.Is(err, forest.ErrUnknownBackend))
}

func TestDetectedBackendIsConcrete(t *testing.T) {
	b := forest.DetectedBackend()
	require.Contains(t, []forest.Backend{forest.BackendReference, forest.BackendUnified}, b)

	fx := fiveNode(t)
	f, err := forest.New(fx.g, fx.comps, []forest.Seeds{{0: 0}})
	require.NoError(t, err)
	require.Equal(t, b, f.Backend())
}

func TestOptionsPanic(t *testing.T) {
	require.Panics(t, func() { forest.WithEpsilon(-0.1) })
	require.Panics(t, func() { forest.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { forest.WithWorkers(0) })
	require.NotPanics(t, func() { forest.WithEpsilon(0) })
}
