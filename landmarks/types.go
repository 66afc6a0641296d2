package landmarks

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/travellermap/altroute/forest"
	"github.com/travellermap/altroute/metrics"
)

// Sentinel errors for landmark selection.
var (
	// ErrNilGraph indicates a missing star or distance graph.
	ErrNilGraph = errors.New("landmarks: graph is nil")

	// ErrGraphMismatch indicates the star graph and distance graph disagree
	// on the number of nodes.
	ErrGraphMismatch = errors.New("landmarks: star graph and distance graph differ in size")

	// ErrUnknownScheme indicates an unrecognised scheme name.
	ErrUnknownScheme = errors.New("landmarks: unknown scheme")

	// ErrInvariant indicates an internal consistency fault: a duplicate
	// landmark, a slot count that misses its quota, or a non-zero avoid
	// weight on an unreachable node. The current pass must be abandoned.
	ErrInvariant = errors.New("landmarks: internal invariant violated")
)

// Scheme names accepted by New and by configuration.
const (
	SchemeTriaxial = "triaxial"
	SchemeQ        = "q"
	SchemeR        = "r"
	SchemeS        = "s"
	SchemeWTN      = "wtn"
)

// Scheme chooses landmarks for every component of a graph.
type Scheme interface {
	// Name is the scheme name, as accepted by New.
	Name() string
	// Landmarks runs the selection. It is deterministic for a given graph.
	Landmarks() (*Result, error)
}

// Result is the output of a Scheme.
//
// Slots[i] maps component id → landmark for slot i; a component with a
// smaller quota is absent from the later slots. Components maps component
// id → every landmark chosen for it, in slot order and without repeats.
type Result struct {
	Slots      []forest.Seeds
	Components map[int][]int
}

func newResult(slots int) *Result {
	r := &Result{
		Slots:      make([]forest.Seeds, slots),
		Components: make(map[int][]int),
	}
	for i := range r.Slots {
		r.Slots[i] = make(forest.Seeds)
	}
	return r
}

// set records picks[i] as the landmark of component c in slot i.
func (r *Result) set(c int, picks []int) {
	for i, v := range picks {
		r.Slots[i][c] = v
	}
	r.Components[c] = picks
}

// trim drops trailing slots no component filled.
func (r *Result) trim() {
	for len(r.Slots) > 0 && len(r.Slots[len(r.Slots)-1]) == 0 {
		r.Slots = r.Slots[:len(r.Slots)-1]
	}
}

// Count returns the total number of landmarks over all components.
func (r *Result) Count() int {
	n := 0
	for _, picks := range r.Components {
		n += len(picks)
	}
	return n
}

// BTNEdge is one high-traffic edge fed to the triaxial scheme. Only Source is
// tallied; Neighbor and BTN are carried for the caller's bookkeeping.
type BTNEdge struct {
	Source   int
	Neighbor int
	BTN      float64
}

// Options configures landmark selection.
//
// RouteReuse – drives the slot cap, see MaxSlots.
// Epsilon    – slack of the forest used by the avoid phase.
// Seeds      – coordinate-extreme seeds of the triaxial scheme: 3 or 6.
// BTN        – optional high-traffic edges, sorted by BTN descending.
// Backend    – forest backend of the avoid phase.
// Workers    – worker count handed to the forest.
type Options struct {
	RouteReuse int
	Epsilon    float64
	Seeds      int
	BTN        []BTNEdge
	Backend    forest.Backend
	Workers    int
	Logger     logrus.FieldLogger
	Metrics    *metrics.Collector
}

// Option is a functional option for schemes.
type Option func(*Options)

// WithRouteReuse sets the route reuse factor. Panics if n < 1.
func WithRouteReuse(n int) Option {
	if n < 1 {
		panic("landmarks: WithRouteReuse requires n ≥ 1")
	}
	return func(o *Options) {
		o.RouteReuse = n
	}
}

// WithEpsilon sets the avoid-phase forest slack. Panics if eps is negative,
// NaN or infinite.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("landmarks: WithEpsilon requires a finite eps ≥ 0")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithSeeds selects the three- or six-extreme triaxial variant. Panics on
// any other count.
func WithSeeds(n int) Option {
	if n != 3 && n != 6 {
		panic("landmarks: WithSeeds requires 3 or 6")
	}
	return func(o *Options) {
		o.Seeds = n
	}
}

// WithBTN supplies the high-traffic edge list.
func WithBTN(edges []BTNEdge) Option {
	return func(o *Options) {
		o.BTN = edges
	}
}

// WithBackend forces the forest backend used by the avoid phase.
func WithBackend(b forest.Backend) Option {
	return func(o *Options) {
		o.Backend = b
	}
}

// WithWorkers sets the forest worker count. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("landmarks: WithWorkers requires n ≥ 1")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger routes debug events to logger. A nil logger is ignored.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics counts picked landmarks on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) {
		o.Metrics = c
	}
}

// DefaultOptions returns route reuse 10, epsilon 0.2, three seeds, the
// detected forest backend and the standard logger.
func DefaultOptions() Options {
	return Options{
		RouteReuse: 10,
		Epsilon:    0.2,
		Seeds:      3,
		Backend:    forest.BackendAuto,
		Logger:     logrus.StandardLogger(),
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
