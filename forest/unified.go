package forest

import (
	"math"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/travellermap/altroute/distgraph"
)

// bulkChunk is the smallest node run handed to one worker in LowerBoundBulk.
const bulkChunk = 2048

// Unified stores every tree as one column of a node-by-tree slab:
// dist[k*n+v] is the distance from landmark k to node v. Trees are built and
// repaired concurrently, and bulk bounds sweep one column at a time.
type Unified struct {
	mu sync.RWMutex
	*base

	n       int
	dist    []float64
	parents []int
}

var _ ApproximateForest = (*Unified)(nil)

// NewUnified builds one tree per unique landmark in seeds, Workers at a time.
func NewUnified(g *distgraph.Graph, components []int, seeds []Seeds, opts ...Option) (*Unified, error) {
	b, err := newBase(g, components, BackendUnified, opts)
	if err != nil {
		return nil, err
	}
	f := &Unified{base: b, n: g.Len()}
	if err = f.ExpandForest(seeds...); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Unified) column(k int) ([]float64, []int) {
	lo, hi := k*f.n, (k+1)*f.n
	return f.dist[lo:hi:hi], f.parents[lo:hi:hi]
}

// ExpandForest appends one column per new landmark and fills the new
// columns concurrently. Existing columns keep their values.
func (f *Unified) ExpandForest(seeds ...Seeds) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fresh, err := f.accept(seeds)
	if err != nil {
		return err
	}
	if len(fresh) == 0 {
		return nil
	}

	first := len(f.roots)
	dist := slices.Grow(f.dist, len(fresh)*f.n)[:len(f.dist)+len(fresh)*f.n]
	parents := slices.Grow(f.parents, len(fresh)*f.n)[:len(f.parents)+len(fresh)*f.n]

	var eg errgroup.Group
	eg.SetLimit(f.opts.Workers)
	for i, lm := range fresh {
		lo, hi := (first+i)*f.n, (first+i+1)*f.n
		root := lm.node
		eg.Go(func() error {
			return buildTree(f.g, root, dist[lo:hi:hi], parents[lo:hi:hi])
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}

	f.dist, f.parents = dist, parents
	f.register(fresh)

	f.opts.Metrics.TreeBuilt(string(BackendUnified), len(fresh))
	f.log.WithFields(logrus.Fields{"added": len(fresh), "trees": len(f.roots)}).Debug("forest expanded")

	return nil
}

// UpdateEdges repairs every column after the listed edges were lowered.
// Columns are independent, so they are repaired concurrently.
func (f *Unified) UpdateEdges(edges []distgraph.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lowered, err := resolveEdges(f.g, edges)
	if err != nil {
		return errors.Wrap(err, "forest: update edges")
	}

	changed := make([]bool, len(f.roots))
	var eg errgroup.Group
	eg.SetLimit(f.opts.Workers)
	for k, lm := range f.roots {
		dist, parents := f.column(k)
		root := lm.node
		eg.Go(func() error {
			ok, err := repairTree(f.g, root, dist, parents, lowered)
			changed[k] = ok
			return err
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}

	repaired := 0
	for _, ok := range changed {
		if ok {
			repaired++
		}
	}
	f.opts.Metrics.TreeRepaired(string(BackendUnified), repaired, len(edges))
	f.log.WithFields(logrus.Fields{"edges": len(edges), "repaired": repaired}).Debug("forest updated")

	return nil
}

// LowerBound returns the ALT bound on dist(source, target).
func (f *Unified) LowerBound(source, target int) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	f.opts.Metrics.BoundQuery(string(BackendUnified), 1)

	trees, value, done := f.pairScope(source, target)
	if done {
		return value
	}
	best := 0.0
	for _, k := range trees {
		var ok bool
		if best, ok = fold(best, f.dist[k*f.n+source], f.dist[k*f.n+target]); !ok {
			return best
		}
	}

	return best * f.divisor
}

// LowerBoundBulk evaluates the bound of every node against target. Large
// node vectors are split into chunks swept concurrently.
func (f *Unified) LowerBoundBulk(nodes []int, target int) []float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]float64, len(nodes))
	f.opts.Metrics.BoundQuery(string(BackendUnified), len(nodes))
	if target < 0 || target >= f.n {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out
	}

	if len(nodes) < 2*bulkChunk || f.opts.Workers == 1 {
		f.sweep(nodes, target, out)
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(f.opts.Workers)
	for lo := 0; lo < len(nodes); lo += bulkChunk {
		hi := min(lo+bulkChunk, len(nodes))
		eg.Go(func() error {
			f.sweep(nodes[lo:hi], target, out[lo:hi])
			return nil
		})
	}
	_ = eg.Wait()

	return out
}

// sweep fills out for nodes against target, one tree column at a time.
// Caller holds the read lock and has checked target.
func (f *Unified) sweep(nodes []int, target int, out []float64) {
	pending := make([]bool, len(nodes))
	tc := f.components[target]
	for i, s := range nodes {
		switch {
		case s < 0 || s >= f.n:
			out[i] = math.Inf(1)
		case s == target:
			out[i] = 0
		case f.components[s] != tc:
			out[i] = math.Inf(1)
		default:
			pending[i] = true
		}
	}

	for _, k := range f.byComponent[tc] {
		col, _ := f.column(k)
		dt := col[target]
		for i, s := range nodes {
			if !pending[i] {
				continue
			}
			var ok bool
			if out[i], ok = fold(out[i], col[s], dt); !ok {
				pending[i] = false
			}
		}
	}

	for i := range out {
		if pending[i] {
			out[i] *= f.divisor
		}
	}
}

// NumTrees returns the number of trees.
func (f *Unified) NumTrees() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.roots)
}

// Landmarks returns the tree roots in tree order.
func (f *Unified) Landmarks() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]int, len(f.roots))
	for i, lm := range f.roots {
		out[i] = lm.node
	}

	return out
}

// Tree returns a copy of column i.
func (f *Unified) Tree(i int) (Tree, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if i < 0 || i >= len(f.roots) {
		return Tree{}, errors.Wrapf(ErrTreeIndex, "tree %d of %d", i, len(f.roots))
	}
	dist, parents := f.column(i)

	return Tree{
		Landmark:  f.roots[i].node,
		Component: f.roots[i].component,
		Distances: slices.Clone(dist),
		Parents:   slices.Clone(parents),
	}, nil
}

// Epsilon returns the slack factor.
func (f *Unified) Epsilon() float64 {
	return f.opts.Epsilon
}

// Backend returns BackendUnified.
func (f *Unified) Backend() Backend {
	return BackendUnified
}
