package landmarks

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/dijkstra"
	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/forest"
	"github.com/travellermap/altroute/stargraph"
)

// triaxialSeeds are the coordinate extremes that open every component, in
// slot order. The three-seed variant uses the first three.
var triaxialSeeds = []criterion{maxQ, minR, minS, minQ, maxR, maxS}

// Triaxial seeds each component with coordinate extremes, optionally adds
// the busiest high-traffic edge source, and fills the rest of the quota with
// avoid-picked landmarks grown from the component's highest-WTN star.
type Triaxial struct {
	sg   *stargraph.Graph
	dg   *distgraph.Graph
	opts Options
}

var _ Scheme = (*Triaxial)(nil)

// NewTriaxial returns the triaxial scheme over sg and its distance view dg.
func NewTriaxial(sg *stargraph.Graph, dg *distgraph.Graph, opts ...Option) (*Triaxial, error) {
	if sg == nil || dg == nil {
		return nil, ErrNilGraph
	}
	if sg.Len() != dg.Len() {
		return nil, errors.Wrapf(ErrGraphMismatch, "stars=%d nodes=%d", sg.Len(), dg.Len())
	}

	return &Triaxial{sg: sg, dg: dg, opts: buildOptions(opts)}, nil
}

// Name returns "triaxial".
func (t *Triaxial) Name() string {
	return SchemeTriaxial
}

// Landmarks runs the selection. Components are processed in ascending id
// order; the result has as many slots as the largest component's quota.
//
// Errors wrapping ErrInvariant mean selection itself went wrong and the
// pass must be abandoned.
func (t *Triaxial) Landmarks() (*Result, error) {
	sizes, err := t.sg.ComponentSizes()
	if err != nil {
		return nil, err
	}
	stars := t.sg.Stars()
	members := membersByComponent(stars)

	maxSlots := MaxSlots(t.opts.RouteReuse)
	k := seedFactor(t.opts.Seeds)
	largest := 0
	for _, size := range sizes {
		largest = max(largest, size)
	}
	res := newResult(Quota(largest, k, maxSlots))

	sel := &selection{
		Triaxial: t,
		comps:    t.sg.Components(),
	}
	for _, c := range stargraph.SortedKeys(sizes) {
		quota := Quota(sizes[c], k, maxSlots)
		if quota == 0 {
			continue
		}
		picks, err := sel.component(c, members[c], quota)
		if err != nil {
			return nil, err
		}
		res.set(c, picks)
	}
	t.opts.Metrics.LandmarkPicked(SchemeTriaxial, res.Count())

	return res, nil
}

// selection is the state of one Landmarks call.
type selection struct {
	*Triaxial
	comps []int
}

// pass is the per-component state of a selection.
type pass struct {
	c      int
	quota  int
	first  int // highest-WTN star
	picks  []int
	chosen map[int]bool
	log    logrus.FieldLogger
}

func (p *pass) add(v int, how string) {
	p.log.WithFields(logrus.Fields{"slot": len(p.picks), "landmark": v, "by": how}).Debug("landmark picked")
	p.chosen[v] = true
	p.picks = append(p.picks, v)
}

func (p *pass) full() bool {
	return len(p.picks) >= p.quota
}

// component picks quota landmarks for component c.
func (s *selection) component(c int, members []stargraph.Star, quota int) ([]int, error) {
	// Highest WTN first; among equals, lowest index first.
	order := make([]stargraph.Star, len(members))
	copy(order, members)
	sort.SliceStable(order, func(i, j int) bool { return order[i].WTN > order[j].WTN })

	p := &pass{
		c:      c,
		quota:  quota,
		first:  order[0].Index,
		picks:  make([]int, 0, quota),
		chosen: make(map[int]bool, quota),
		log:    s.opts.Logger.WithField("component", c),
	}

	for _, crit := range triaxialSeeds[:min(s.opts.Seeds, quota)] {
		v, ok := crit.pick(order, p.chosen)
		if !ok {
			return nil, errors.Wrapf(ErrInvariant, "component %d: no candidate for %s", c, crit.name)
		}
		p.add(v, crit.name)
	}

	if !p.full() && s.opts.BTN != nil {
		if v, ok := s.busiest(c, p.chosen); ok {
			p.add(v, "btn")
		}
	}

	if !p.full() {
		if err := s.avoid(p); err != nil {
			return nil, err
		}
	}

	if len(p.chosen) != quota || len(p.picks) != quota {
		return nil, errors.Wrapf(ErrInvariant,
			"component %d: %d distinct landmarks in %d slots, quota %d", c, len(p.chosen), len(p.picks), quota)
	}

	return p.picks, nil
}

// busiest tallies high-traffic edges by source star, within component c and
// outside the chosen set, and returns the source with the highest tally.
// Ties go to the source met first in the edge list.
func (s *selection) busiest(c int, chosen map[int]bool) (int, bool) {
	counts := make(map[int]int)
	var seen []int
	for _, e := range s.opts.BTN {
		if e.Source < 0 || e.Source >= len(s.comps) || s.comps[e.Source] != c || chosen[e.Source] {
			continue
		}
		if counts[e.Source] == 0 {
			seen = append(seen, e.Source)
		}
		counts[e.Source]++
	}

	best, top := -1, 0
	for _, v := range seen {
		if counts[v] > top {
			best, top = v, counts[v]
		}
	}
	return best, best >= 0
}

// avoid fills the remaining slots of component c. Each round bounds every
// member against the first star with the landmarks chosen so far, measures
// the slack against the true shortest-path tree from the first star, and
// adds the leaf of the heaviest landmark-free subtree.
func (s *selection) avoid(p *pass) error {
	c, first := p.c, p.first
	n := s.dg.Len()

	seeds := make([]forest.Seeds, len(p.picks))
	for i, v := range p.picks {
		seeds[i] = forest.Seeds{c: v}
	}
	fopts := []forest.Option{
		forest.WithEpsilon(s.opts.Epsilon),
		forest.WithLogger(s.opts.Logger),
		forest.WithMetrics(s.opts.Metrics),
	}
	if s.opts.Workers > 0 {
		fopts = append(fopts, forest.WithWorkers(s.opts.Workers))
	}
	approx, err := forest.NewWithBackend(s.opts.Backend, s.dg, s.comps, seeds, fopts...)
	if err != nil {
		return errors.Wrapf(err, "component %d: avoid forest", c)
	}

	nodes := make([]int, 0)
	for v, comp := range s.comps {
		if comp == c {
			nodes = append(nodes, v)
		}
	}

	// Local-connectivity floor under the forest bound.
	static := s.dg.DistancesFromTarget(nodes, first)
	minCost := s.dg.MinCost(first)
	for i := range static {
		static[i] = math.Max(static[i], minCost)
	}

	tree, err := dijkstra.Dijkstra(s.dg, first, dijkstra.NewLabels(n, first))
	if err != nil {
		return errors.Wrapf(err, "component %d: tree from %d", c, first)
	}

	lower := make([]float64, n)
	for !p.full() {
		bulk := approx.LowerBoundBulk(nodes, first)
		for i, v := range nodes {
			lower[v] = math.Max(bulk[i], static[i])
		}

		weights := CalcWeights(tree.Distances, lower)
		for v, d := range tree.Distances {
			if math.IsInf(d, 1) && weights[v] != 0 {
				return errors.Wrapf(ErrInvariant, "component %d: unreachable node %d has weight %g", c, v, weights[v])
			}
		}
		sizes := CalcSizes(weights, tree.Parents, p.chosen)
		v := TraverseSizes(sizes, first, tree.Parents)
		how := "avoid"
		if p.chosen[v] {
			var ok bool
			if v, ok = fallback(nodes, sizes, tree.Distances, p.chosen); !ok {
				return errors.Wrapf(ErrInvariant, "component %d: no landmark left to pick", c)
			}
			how = "avoid fallback"
		}

		p.add(v, how)
		if err = approx.ExpandForest(forest.Seeds{c: v}); err != nil {
			return errors.Wrapf(err, "component %d: expand forest", c)
		}
	}

	return nil
}

// fallback returns the unchosen node with the largest positive size, or
// failing that the unchosen node farthest from the first star. Ties go to
// the lowest index.
func fallback(nodes []int, sizes, dist []float64, chosen map[int]bool) (int, bool) {
	best, bestSize := -1, 0.0
	for _, v := range nodes {
		if !chosen[v] && sizes[v] > bestSize {
			best, bestSize = v, sizes[v]
		}
	}
	if best >= 0 {
		return best, true
	}

	far, farDist := -1, math.Inf(-1)
	for _, v := range nodes {
		if chosen[v] || math.IsInf(dist[v], 1) {
			continue
		}
		if dist[v] > farDist {
			far, farDist = v, dist[v]
		}
	}
	return far, far >= 0
}
