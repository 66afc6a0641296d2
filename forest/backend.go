package forest

import (
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/travellermap/altroute/distgraph"
)

// Backend names a forest implementation.
type Backend string

const (
	// BackendAuto defers to the backend detected at start-up.
	BackendAuto Backend = "auto"
	// BackendReference is the plain per-tree implementation.
	BackendReference Backend = "reference"
	// BackendUnified is the slab-backed parallel implementation.
	BackendUnified Backend = "unified"
)

// EnvBackend overrides backend detection when set to "reference" or "unified".
const EnvBackend = "ALTROUTE_FOREST"

// detected is resolved once, when the package is initialised.
var detected = detectBackend()

func detectBackend() Backend {
	if b, err := ParseBackend(os.Getenv(EnvBackend)); err == nil && b != BackendAuto {
		return b
	}
	if runtime.NumCPU() > 1 {
		return BackendUnified
	}
	return BackendReference
}

func defaultWorkers() int {
	return max(1, runtime.NumCPU())
}

// DetectedBackend returns the backend New uses.
func DetectedBackend() Backend {
	return detected
}

// ParseBackend maps a configuration string onto a Backend. The empty string
// means BackendAuto.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendReference:
		return BackendReference, nil
	case BackendUnified:
		return BackendUnified, nil
	}
	return "", errors.Wrapf(ErrUnknownBackend, "%q", name)
}

// New builds a forest on the detected backend.
func New(g *distgraph.Graph, components []int, seeds []Seeds, opts ...Option) (ApproximateForest, error) {
	return NewWithBackend(BackendAuto, g, components, seeds, opts...)
}

// NewWithBackend builds a forest on backend b; BackendAuto means DetectedBackend().
func NewWithBackend(b Backend, g *distgraph.Graph, components []int, seeds []Seeds, opts ...Option) (ApproximateForest, error) {
	if b == BackendAuto {
		b = detected
	}
	switch b {
	case BackendReference:
		f, err := NewReference(g, components, seeds, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendUnified:
		f, err := NewUnified(g, components, seeds, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "%q", b)
}
