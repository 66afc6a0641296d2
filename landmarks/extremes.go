package landmarks

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/stargraph"
)

// criterion ranks stars by one scalar attribute.
type criterion struct {
	name    string
	key     func(stargraph.Star) float64
	largest bool
}

func hexQ(s stargraph.Star) float64 { return float64(s.Hex.Q) }
func hexR(s stargraph.Star) float64 { return float64(s.Hex.R) }
func hexS(s stargraph.Star) float64 { return float64(s.Hex.S()) }
func wtn(s stargraph.Star) float64  { return s.WTN }

var (
	maxQ   = criterion{name: "max q", key: hexQ, largest: true}
	minQ   = criterion{name: "min q", key: hexQ}
	maxR   = criterion{name: "max r", key: hexR, largest: true}
	minR   = criterion{name: "min r", key: hexR}
	maxS   = criterion{name: "max s", key: hexS, largest: true}
	minS   = criterion{name: "min s", key: hexS}
	maxWTN = criterion{name: "max wtn", key: wtn, largest: true}
)

// extremeCriteria lists the slots of each simple scheme.
var extremeCriteria = map[string][]criterion{
	SchemeQ:   {maxQ, minQ},
	SchemeR:   {maxR, minR},
	SchemeS:   {maxS, minS},
	SchemeWTN: {maxWTN},
}

// pick returns the best star of order under c, skipping chosen ones. Ties go
// to the star met first in order.
func (c criterion) pick(order []stargraph.Star, chosen map[int]bool) (int, bool) {
	best, found := -1, false
	var bestKey float64
	for _, s := range order {
		if chosen[s.Index] {
			continue
		}
		k := c.key(s)
		if !found || (c.largest && k > bestKey) || (!c.largest && k < bestKey) {
			best, bestKey, found = s.Index, k, true
		}
	}
	return best, found
}

// Extremes picks, per component, the stars at the extremes of one attribute.
// The q, r and s schemes fill two slots (maximum, then minimum) and the wtn
// scheme one (maximum). Stars are scanned in index order.
type Extremes struct {
	name     string
	criteria []criterion
	g        *stargraph.Graph
	opts     Options
}

var _ Scheme = (*Extremes)(nil)

// NewExtremes returns the extreme-coordinate scheme called name (q, r, s or
// wtn) over g.
func NewExtremes(name string, g *stargraph.Graph, opts ...Option) (*Extremes, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	crit, ok := extremeCriteria[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScheme, "%q", name)
	}

	return &Extremes{name: name, criteria: crit, g: g, opts: buildOptions(opts)}, nil
}

// Name returns the scheme name.
func (e *Extremes) Name() string {
	return e.name
}

// Landmarks picks one star per criterion for every component of two or more
// stars. A later criterion never repeats an earlier pick of the component.
func (e *Extremes) Landmarks() (*Result, error) {
	sizes, err := e.g.ComponentSizes()
	if err != nil {
		return nil, err
	}
	members := membersByComponent(e.g.Stars())

	res := newResult(len(e.criteria))
	for _, c := range stargraph.SortedKeys(sizes) {
		if sizes[c] < 2 {
			continue
		}
		chosen := make(map[int]bool)
		picks := make([]int, 0, len(e.criteria))
		for _, crit := range e.criteria {
			v, ok := crit.pick(members[c], chosen)
			if !ok {
				return nil, errors.Wrapf(ErrInvariant, "component %d: no candidate for %s", c, crit.name)
			}
			chosen[v] = true
			picks = append(picks, v)
		}
		res.set(c, picks)

		e.opts.Logger.WithFields(logrus.Fields{
			"scheme":    e.name,
			"component": c,
			"landmarks": picks,
		}).Debug("landmarks picked")
	}
	res.trim()
	e.opts.Metrics.LandmarkPicked(e.name, res.Count())

	return res, nil
}

// membersByComponent groups stars by component, keeping index order.
func membersByComponent(stars []stargraph.Star) map[int][]stargraph.Star {
	out := make(map[int][]stargraph.Star)
	for _, s := range stars {
		out[s.Component] = append(out[s.Component], s)
	}
	return out
}
