package forest

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/dijkstra"
	"github.com/travellermap/altroute/distgraph"
)

// landmark is one tree root and the component it serves.
type landmark struct {
	node      int
	component int
}

// base carries what both backends share: the graph, component labels, the
// tree roots and their per-component grouping.
type base struct {
	g          *distgraph.Graph
	components []int
	opts       Options
	divisor    float64
	log        logrus.FieldLogger

	roots       []landmark
	have        map[int]bool
	byComponent map[int][]int // component → tree indices
}

func newBase(g *distgraph.Graph, components []int, backend Backend, opts []Option) (*base, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(components) != g.Len() {
		return nil, errors.Wrapf(ErrComponentLength, "components=%d nodes=%d", len(components), g.Len())
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	comps := make([]int, len(components))
	copy(comps, components)

	return &base{
		g:           g,
		components:  comps,
		opts:        cfg,
		divisor:     1 / (1 + cfg.Epsilon),
		log:         cfg.Logger.WithField("backend", string(backend)),
		have:        make(map[int]bool),
		byComponent: make(map[int][]int),
	}, nil
}

// accept validates seeds and returns the landmarks not yet in the forest,
// in slot order and ascending component order within a slot. Duplicates are
// dropped.
func (b *base) accept(seeds []Seeds) ([]landmark, error) {
	n := len(b.components)
	seen := make(map[int]bool)
	var fresh []landmark
	for _, slot := range seeds {
		comps := make([]int, 0, len(slot))
		for c := range slot {
			comps = append(comps, c)
		}
		sort.Ints(comps)

		for _, c := range comps {
			node := slot[c]
			if node < 0 || node >= n {
				return nil, errors.Wrapf(ErrLandmarkNotFound, "landmark %d of %d", node, n)
			}
			if b.components[node] != c {
				return nil, errors.Wrapf(ErrComponentMismatch,
					"landmark %d is in component %d, filed under %d", node, b.components[node], c)
			}
			if b.have[node] || seen[node] {
				continue
			}
			seen[node] = true
			fresh = append(fresh, landmark{node: node, component: c})
		}
	}

	return fresh, nil
}

// register appends accepted roots; tree indices follow append order.
func (b *base) register(fresh []landmark) {
	for _, lm := range fresh {
		b.byComponent[lm.component] = append(b.byComponent[lm.component], len(b.roots))
		b.roots = append(b.roots, lm)
		b.have[lm.node] = true
	}
}

// pairScope resolves the trees that can bound (source, target). done is true
// when the answer is already known (same node, foreign component or bad
// index) and given in value.
func (b *base) pairScope(source, target int) (trees []int, value float64, done bool) {
	n := len(b.components)
	if source < 0 || source >= n || target < 0 || target >= n {
		return nil, math.Inf(1), true
	}
	if source == target {
		return nil, 0, true
	}
	if b.components[source] != b.components[target] {
		return nil, math.Inf(1), true
	}
	return b.byComponent[b.components[target]], 0, false
}

// fold merges one landmark's distances into the running bound. It reports
// false when exactly one side is unreachable from the landmark, which means
// the pair is unreachable too.
func fold(best, ds, dt float64) (float64, bool) {
	sInf, tInf := math.IsInf(ds, 1), math.IsInf(dt, 1)
	if sInf != tInf {
		return math.Inf(1), false
	}
	if sInf {
		return best, true
	}
	return math.Max(best, math.Abs(ds-dt)), true
}

// buildTree runs a fresh Dijkstra from root into dist and parents.
func buildTree(g *distgraph.Graph, root int, dist []float64, parents []int) error {
	for i := range dist {
		dist[i] = math.Inf(1)
		parents[i] = dijkstra.NoParent
	}
	dist[root] = 0
	_, err := dijkstra.Dijkstra(g, root, dist, dijkstra.WithParents(parents))

	return errors.Wrapf(err, "build tree rooted at %d", root)
}

// loweredEdge is an updated edge with its new weight.
type loweredEdge struct {
	u, v   int
	weight float64
}

// resolveEdges reads the current weight of each reported edge.
func resolveEdges(g *distgraph.Graph, edges []distgraph.Edge) ([]loweredEdge, error) {
	out := make([]loweredEdge, 0, len(edges))
	for _, e := range edges {
		w, err := g.Weight(e.U, e.V)
		if err != nil {
			return nil, err
		}
		out = append(out, loweredEdge{u: e.U, v: e.V, weight: w})
	}

	return out, nil
}

// relaxLowered relaxes each lowered edge in both directions and returns the
// endpoints it improved, each once, in the order first improved.
func relaxLowered(dist []float64, parents []int, edges []loweredEdge) []int {
	var seeds []int
	seeded := make(map[int]bool)
	relax := func(from, to int, w float64) {
		if d := dist[from] + w; d < dist[to] {
			dist[to] = d
			parents[to] = from
			if !seeded[to] {
				seeded[to] = true
				seeds = append(seeds, to)
			}
		}
	}
	for _, e := range edges {
		relax(e.u, e.v, e.weight)
		relax(e.v, e.u, e.weight)
	}

	return seeds
}

// repairTree relaxes every lowered edge against one tree and propagates the
// resulting decreases. It reports whether the tree changed.
func repairTree(g *distgraph.Graph, root int, dist []float64, parents []int, edges []loweredEdge) (bool, error) {
	seeds := relaxLowered(dist, parents, edges)
	if len(seeds) == 0 {
		return false, nil
	}

	_, err := dijkstra.Dijkstra(g, root, dist,
		dijkstra.WithParents(parents),
		dijkstra.WithSeeds(seeds...),
	)
	if err != nil {
		return false, errors.Wrapf(err, "repair tree rooted at %d", root)
	}

	return true, nil
}
