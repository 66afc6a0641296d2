package dijkstra

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"
)

// Dijkstra computes shortest distances from source over g, starting from the
// caller's pre-seeded distance labels.
//
// For a fresh run pass NewLabels(g.Len(), source): source = 0, everything
// else +Inf. To repair an existing tree after some weights decreased, pass
// that tree's distances as labels, its parents through WithParents, and the
// nodes whose labels were just lowered through WithSeeds. Labels must be valid
// upper bounds (each finite label achievable by some path) for the result to
// be exact.
//
// Returns:
//
//   - res.Distances: labels, updated in place; +Inf where unreached.
//   - res.Parents:   predecessor of each node, NoParent for roots and unreached.
//   - res.Reached:   number of nodes settled by this call.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source and every seed must be nodes of g (ErrVertexNotFound).
//  3. labels (and parents, if given) must have g.Len() entries (ErrLabelLength).
//  4. No relaxed edge may be negative (ErrNegativeWeight).
//
// Ties are broken by push order: among equal distances the node discovered
// first is settled first, and a label is only replaced by a strictly smaller
// one, so the first parent found keeps the node.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g Graph, source int, labels []float64, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph is non-nil
	if g == nil {
		return nil, ErrNilGraph
	}

	// 3) Validate source, seeds and slice lengths
	n := g.Len()
	if source < 0 || source >= n {
		return nil, errors.Wrapf(ErrVertexNotFound, "source %d of %d", source, n)
	}
	for _, s := range cfg.Seeds {
		if s < 0 || s >= n {
			return nil, errors.Wrapf(ErrVertexNotFound, "seed %d of %d", s, n)
		}
	}
	if len(labels) != n {
		return nil, errors.Wrapf(ErrLabelLength, "labels=%d nodes=%d", len(labels), n)
	}

	parents := cfg.Parents
	if parents == nil {
		parents = make([]int, n)
		for i := range parents {
			parents[i] = NoParent
		}
	} else if len(parents) != n {
		return nil, errors.Wrapf(ErrLabelLength, "parents=%d nodes=%d", len(parents), n)
	}

	// 4) Initialize runner and run main loop.
	r := &runner{
		g:       g,
		options: cfg,
		dist:    labels,
		prev:    parents,
		pq:      make(nodePQ, 0, n),
	}
	r.init(source)
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{
		Distances: r.dist,
		Parents:   r.prev,
		Reached:   r.reached,
	}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       Graph     // read-only within Dijkstra
	options Options   // Seeds, MaxDistance
	dist    []float64 // node → best distance so far (caller's labels)
	prev    []int     // node → predecessor on the shortest path
	pq      nodePQ    // lazy min-heap
	seq     uint64    // push counter, breaks distance ties
	reached int       // settled nodes
}

// init pushes the source and every seed with their current labels. Nodes
// still labelled +Inf cannot start anything and are left out.
func (r *runner) init(source int) {
	heap.Init(&r.pq)
	if !math.IsInf(r.dist[source], 1) {
		r.push(source, r.dist[source])
	}
	for _, s := range r.options.Seeds {
		if s != source && !math.IsInf(r.dist[s], 1) {
			r.push(s, r.dist[s])
		}
	}
}

func (r *runner) push(id int, d float64) {
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
	r.seq++
}

// process is the core loop: pop the closest node, skip stale entries, relax.
//
// Loop termination conditions:
//
//   - The heap becomes empty.
//   - The minimum distance in the heap exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)

		// A label only ever shrinks, so an entry above the label is stale.
		if item.dist > r.dist[item.id] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.reached++

		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve every neighbor of u through u.
func (r *runner) relax(u int) error {
	du := r.dist[u]
	for v, w := range r.g.Neighbors(u) {
		if w < 0 {
			return errors.Wrapf(ErrNegativeWeight, "edge %d→%d weight=%g", u, v, w)
		}
		newDist := du + w
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strictly better only: the first parent found keeps ties.
		if newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = u
		r.push(v, newDist)
	}

	return nil
}

// nodeItem represents a vertex and its distance at push time.
type nodeItem struct {
	id   int
	dist float64
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
