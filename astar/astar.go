package astar

import (
	"container/heap"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/forest"
)

// Outcome labels for the search counter.
const (
	outcomeFound       = "found"
	outcomeUnreachable = "unreachable"
	outcomeError       = "error"
)

// Search finds the shortest route from source to target, guided by the
// forest's lower bounds. The result equals Dijkstra's distance because the
// bounds never overestimate.
//
// Searches only read g and f; run them concurrently as long as nobody
// commits a weight change meanwhile.
//
// Complexity: O((V + E) log V) in the worst case; typically far fewer nodes
// are expanded.
func Search(g *distgraph.Graph, f forest.ApproximateForest, source, target int, opts ...Option) (Path, error) {
	cfg := buildOptions(opts)
	start := time.Now()

	p, err := search(g, f, source, target)
	switch {
	case err != nil:
		cfg.Metrics.SearchDone(outcomeError, time.Since(start))
	case p.Found():
		cfg.Metrics.SearchDone(outcomeFound, time.Since(start))
	default:
		cfg.Metrics.SearchDone(outcomeUnreachable, time.Since(start))
	}

	return p, err
}

func search(g *distgraph.Graph, f forest.ApproximateForest, source, target int) (Path, error) {
	if g == nil {
		return Path{}, ErrNilGraph
	}
	if f == nil {
		return Path{}, ErrNilForest
	}
	n := g.Len()
	if source < 0 || source >= n || target < 0 || target >= n {
		return Path{}, errors.Wrapf(ErrNodeNotFound, "route %d→%d of %d", source, target, n)
	}

	p := Path{Source: source, Target: target, Distance: math.Inf(1)}
	if math.IsInf(f.LowerBound(source, target), 1) {
		return p, nil
	}

	dist := make([]float64, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0

	var open openSet
	var seq uint64
	push := func(v int, d float64) {
		heap.Push(&open, &entry{id: v, g: d, f: d + f.LowerBound(v, target), seq: seq})
		seq++
	}
	push(source, 0)

	for open.Len() > 0 {
		e := heap.Pop(&open).(*entry)
		if e.g > dist[e.id] {
			continue
		}
		p.Expanded++
		if e.id == target {
			p.Distance = dist[target]
			p.Nodes = walk(prev, source, target)
			return p, nil
		}

		for v, w := range g.Neighbors(e.id) {
			if d := e.g + w; d < dist[v] {
				dist[v] = d
				prev[v] = e.id
				push(v, d)
			}
		}
	}

	return p, nil
}

// walk rebuilds source→target from predecessor links.
func walk(prev []int, source, target int) []int {
	var rev []int
	for v := target; v != source; v = prev[v] {
		rev = append(rev, v)
	}
	rev = append(rev, source)

	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// entry is one open-set item. f = g + h at push time.
type entry struct {
	id   int
	g, f float64
	seq  uint64
}

// openSet is a min-heap ordered by (f, seq).
type openSet []*entry

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].seq < s[j].seq
}

func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x interface{}) { *s = append(*s, x.(*entry)) }

func (s *openSet) Pop() interface{} {
	old := *s
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]

	return e
}

// Commit applies route reuse: every edge on path is lightened to discount
// times its current weight, then the forest is repaired. Commit is a write;
// the caller must keep searches off g and f until it returns.
func Commit(g *distgraph.Graph, f forest.ApproximateForest, path Path, discount float64) error {
	if g == nil {
		return ErrNilGraph
	}
	if f == nil {
		return ErrNilForest
	}
	if !(discount > 0 && discount <= 1) {
		return errors.Wrapf(ErrBadDiscount, "discount=%g", discount)
	}
	if len(path.Nodes) < 2 {
		return nil
	}

	edges := make([]distgraph.Edge, 0, len(path.Nodes)-1)
	for i := 1; i < len(path.Nodes); i++ {
		u, v := path.Nodes[i-1], path.Nodes[i]
		if err := lighten(g, u, v, discount); err != nil {
			return abortCommit(f, edges, errors.Wrap(err, "astar: commit"))
		}
		edges = append(edges, distgraph.Edge{U: u, V: v})
	}

	return f.UpdateEdges(edges)
}

func lighten(g *distgraph.Graph, u, v int, discount float64) error {
	w, err := g.Weight(u, v)
	if err != nil {
		return err
	}
	return g.LightenEdge(u, v, w*discount)
}

// abortCommit repairs the forest for the edges already lightened, so the
// trees stay consistent with g, and returns cause.
func abortCommit(f forest.ApproximateForest, lowered []distgraph.Edge, cause error) error {
	if len(lowered) == 0 {
		return cause
	}
	if err := f.UpdateEdges(lowered); err != nil {
		return errors.Wrapf(cause, "forest repair also failed: %v", err)
	}
	return cause
}
