package landmarks

import (
	"github.com/pkg/errors"

	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/stargraph"
)

// New returns the scheme called name. dg is only read by the triaxial scheme
// and may be nil for the others.
func New(name string, sg *stargraph.Graph, dg *distgraph.Graph, opts ...Option) (Scheme, error) {
	switch name {
	case SchemeTriaxial:
		t, err := NewTriaxial(sg, dg, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	case SchemeQ, SchemeR, SchemeS, SchemeWTN:
		e, err := NewExtremes(name, sg, opts...)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, errors.Wrapf(ErrUnknownScheme, "%q", name)
}
