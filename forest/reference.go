package forest

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/distgraph"
)

// Reference keeps every tree in its own slices and does all work on the
// calling goroutine.
type Reference struct {
	mu sync.RWMutex
	*base

	trees []*Tree
}

var _ ApproximateForest = (*Reference)(nil)

// NewReference builds one tree per unique landmark in seeds.
//
// Errors:
//   - ErrNilGraph, ErrComponentLength for bad inputs.
//   - ErrLandmarkNotFound, ErrComponentMismatch for bad seeds.
//
// Complexity: O(L · (V + E) log V) for L landmarks.
func NewReference(g *distgraph.Graph, components []int, seeds []Seeds, opts ...Option) (*Reference, error) {
	b, err := newBase(g, components, BackendReference, opts)
	if err != nil {
		return nil, err
	}
	f := &Reference{base: b}
	if err = f.ExpandForest(seeds...); err != nil {
		return nil, err
	}

	return f, nil
}

// ExpandForest builds trees for landmarks not yet present. Existing trees
// are left untouched.
func (f *Reference) ExpandForest(seeds ...Seeds) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fresh, err := f.accept(seeds)
	if err != nil {
		return err
	}

	n := f.g.Len()
	built := make([]*Tree, 0, len(fresh))
	for _, lm := range fresh {
		t := &Tree{
			Landmark:  lm.node,
			Component: lm.component,
			Distances: make([]float64, n),
			Parents:   make([]int, n),
		}
		if err = buildTree(f.g, lm.node, t.Distances, t.Parents); err != nil {
			return err
		}
		built = append(built, t)
	}
	f.register(fresh)
	f.trees = append(f.trees, built...)

	f.opts.Metrics.TreeBuilt(string(BackendReference), len(built))
	f.log.WithFields(logrus.Fields{"added": len(built), "trees": len(f.trees)}).Debug("forest expanded")

	return nil
}

// UpdateEdges repairs every tree after the listed edges were lowered.
func (f *Reference) UpdateEdges(edges []distgraph.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lowered, err := resolveEdges(f.g, edges)
	if err != nil {
		return errors.Wrap(err, "forest: update edges")
	}

	repaired := 0
	for _, t := range f.trees {
		changed, err := repairTree(f.g, t.Landmark, t.Distances, t.Parents, lowered)
		if err != nil {
			return err
		}
		if changed {
			repaired++
		}
	}

	f.opts.Metrics.TreeRepaired(string(BackendReference), repaired, len(edges))
	f.log.WithFields(logrus.Fields{"edges": len(edges), "repaired": repaired}).Debug("forest updated")

	return nil
}

// LowerBound returns the ALT bound on dist(source, target).
func (f *Reference) LowerBound(source, target int) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	f.opts.Metrics.BoundQuery(string(BackendReference), 1)
	return f.lowerBound(source, target)
}

func (f *Reference) lowerBound(source, target int) float64 {
	trees, value, done := f.pairScope(source, target)
	if done {
		return value
	}
	best := 0.0
	for _, k := range trees {
		t := f.trees[k]
		var ok bool
		if best, ok = fold(best, t.Distances[source], t.Distances[target]); !ok {
			return best
		}
	}

	return best * f.divisor
}

// LowerBoundBulk evaluates LowerBound for each node against one target.
func (f *Reference) LowerBoundBulk(nodes []int, target int) []float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]float64, len(nodes))
	for i, s := range nodes {
		out[i] = f.lowerBound(s, target)
	}
	f.opts.Metrics.BoundQuery(string(BackendReference), len(nodes))

	return out
}

// NumTrees returns the number of trees.
func (f *Reference) NumTrees() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.trees)
}

// Landmarks returns the tree roots in tree order.
func (f *Reference) Landmarks() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]int, len(f.trees))
	for i, t := range f.trees {
		out[i] = t.Landmark
	}

	return out
}

// Tree returns a copy of tree i.
func (f *Reference) Tree(i int) (Tree, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if i < 0 || i >= len(f.trees) {
		return Tree{}, errors.Wrapf(ErrTreeIndex, "tree %d of %d", i, len(f.trees))
	}
	t := f.trees[i]
	out := Tree{
		Landmark:  t.Landmark,
		Component: t.Component,
		Distances: make([]float64, len(t.Distances)),
		Parents:   make([]int, len(t.Parents)),
	}
	copy(out.Distances, t.Distances)
	copy(out.Parents, t.Parents)

	return out, nil
}

// Epsilon returns the slack factor.
func (f *Reference) Epsilon() float64 {
	return f.opts.Epsilon
}

// Backend returns BackendReference.
func (f *Reference) Backend() Backend {
	return BackendReference
}
