// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// api.go - thin public entry points: BuildGraph and the Constructor type.

package builder

import (
	"github.com/pkg/errors"

	"github.com/travellermap/altroute/stargraph"
)

// Constructor adds stars and jump links to g using the resolved config.
// Constructors validate their parameters up front, append stars after the
// ones already present and never panic.
type Constructor func(g *stargraph.Graph, cfg builderConfig) error

// BuildGraph creates a stargraph.Graph with gopts, resolves bopts, applies
// cons in order and labels connected components.
//
// Errors from a constructor are returned wrapped with its position; the
// partially built graph is discarded.
func BuildGraph(gopts []stargraph.GraphOption, bopts []BuilderOption, cons ...Constructor) (*stargraph.Graph, error) {
	g := stargraph.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, errors.Wrapf(ErrConstructFailed, "BuildGraph: nil constructor at index %d", i)
		}
		if err := fn(g, cfg); err != nil {
			return nil, errors.Wrapf(err, "BuildGraph: constructor %d", i)
		}
	}
	g.CalculateComponents()

	return g, nil
}

// addStars appends one star per hex, naming and rating them through cfg,
// and returns the index of the first one.
func addStars(g *stargraph.Graph, cfg builderConfig, hexes []stargraph.Hex) int {
	first := g.Len()
	for i, h := range hexes {
		idx := first + i
		g.AddStar(cfg.nameFn(idx), h, cfg.wtnFn(cfg.rng, h))
	}
	return first
}

// linkWithin adds an edge for every pair of stars first..first+len(hexes)-1
// whose hex distance is between 1 and maxJump. Pairs are emitted with the
// lower index first, in index order.
func linkWithin(g *stargraph.Graph, cfg builderConfig, method string, first int, hexes []stargraph.Hex, maxJump int) error {
	for i := range hexes {
		for j := i + 1; j < len(hexes); j++ {
			jump := stargraph.Distance(hexes[i], hexes[j])
			if jump < 1 || jump > maxJump {
				continue
			}
			w := cfg.weightFn(cfg.rng, jump)
			if err := g.AddEdge(first+i, first+j, w); err != nil {
				return errors.Wrapf(err, "%s: AddEdge(%d-%d, w=%g)", method, first+i, first+j, w)
			}
		}
	}
	return nil
}
