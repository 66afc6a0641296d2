// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// impl_hexfield.go - HexField and Scatter constructors on axial hex coordinates.

package builder

import (
	"github.com/pkg/errors"

	"github.com/travellermap/altroute/stargraph"
)

const (
	methodHexField = "HexField"
	methodScatter  = "Scatter"
	minRadius      = 0
	minJump        = 1
	minScatter     = 1
)

// HexField builds one star on every hex within radius of the origin and
// links every pair at most maxJump parsecs apart. Stars are added column by
// column (q ascending, then r ascending), so a radius-R field holds
// 3R²+3R+1 stars.
//
// Errors: ErrTooFewStars if radius < 0 or maxJump < 1.
// Complexity: O(V²) pair checks.
func HexField(radius, maxJump int) Constructor {
	return func(g *stargraph.Graph, cfg builderConfig) error {
		if radius < minRadius {
			return errors.Wrapf(ErrTooFewStars, "%s: radius=%d < min=%d", methodHexField, radius, minRadius)
		}
		if maxJump < minJump {
			return errors.Wrapf(ErrTooFewStars, "%s: maxJump=%d < min=%d", methodHexField, maxJump, minJump)
		}

		hexes := hexesWithin(radius)
		first := addStars(g, cfg, hexes)

		return linkWithin(g, cfg, methodHexField, first, hexes, maxJump)
	}
}

// Scatter places n stars on distinct random hexes within span of the origin
// and links every pair at most maxJump parsecs apart. Sparse draws leave
// several components, which is the point of the fixture.
//
// Errors:
//   - ErrTooFewStars if n < 1, span < 0 or maxJump < 1.
//   - ErrBadSize if n exceeds the number of hexes within span.
//   - ErrNeedRandSource without WithSeed or WithRand.
//
// Complexity: O(span² + n²).
func Scatter(n, span, maxJump int) Constructor {
	return func(g *stargraph.Graph, cfg builderConfig) error {
		switch {
		case n < minScatter:
			return errors.Wrapf(ErrTooFewStars, "%s: n=%d < min=%d", methodScatter, n, minScatter)
		case span < minRadius:
			return errors.Wrapf(ErrTooFewStars, "%s: span=%d < min=%d", methodScatter, span, minRadius)
		case maxJump < minJump:
			return errors.Wrapf(ErrTooFewStars, "%s: maxJump=%d < min=%d", methodScatter, maxJump, minJump)
		case cfg.rng == nil:
			return errors.Wrap(ErrNeedRandSource, methodScatter)
		}

		area := hexesWithin(span)
		if n > len(area) {
			return errors.Wrapf(ErrBadSize, "%s: n=%d exceeds %d hexes within span %d", methodScatter, n, len(area), span)
		}
		hexes := make([]stargraph.Hex, n)
		for i, k := range cfg.rng.Perm(len(area))[:n] {
			hexes[i] = area[k]
		}
		first := addStars(g, cfg, hexes)

		return linkWithin(g, cfg, methodScatter, first, hexes, maxJump)
	}
}

// hexesWithin lists every hex at most radius from the origin, q ascending
// then r ascending.
func hexesWithin(radius int) []stargraph.Hex {
	out := make([]stargraph.Hex, 0, 3*radius*radius+3*radius+1)
	for q := -radius; q <= radius; q++ {
		lo, hi := max(-radius, -q-radius), min(radius, -q+radius)
		for r := lo; r <= hi; r++ {
			out = append(out, stargraph.Hex{Q: q, R: r})
		}
	}
	return out
}
