// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// impl_line.go - Line constructor: stars along the q axis.

package builder

import (
	"github.com/pkg/errors"

	"github.com/travellermap/altroute/stargraph"
)

const (
	methodLine   = "Line"
	minLineStars = 2
)

// Line builds n stars at (0,0), (1,0), ..., (n-1,0) joined by one-parsec
// jumps i-1 → i.
//
// Errors: ErrTooFewStars if n < 2.
// Complexity: O(n).
func Line(n int) Constructor {
	return func(g *stargraph.Graph, cfg builderConfig) error {
		if n < minLineStars {
			return errors.Wrapf(ErrTooFewStars, "%s: n=%d < min=%d", methodLine, n, minLineStars)
		}

		hexes := make([]stargraph.Hex, n)
		for i := range hexes {
			hexes[i] = stargraph.Hex{Q: i}
		}
		first := addStars(g, cfg, hexes)

		for i := 1; i < n; i++ {
			w := cfg.weightFn(cfg.rng, 1)
			if err := g.AddEdge(first+i-1, first+i, w); err != nil {
				return errors.Wrapf(err, "%s: AddEdge(%d-%d, w=%g)", methodLine, first+i-1, first+i, w)
			}
		}

		return nil
	}
}
