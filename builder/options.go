// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// options.go - BuilderOption constructors.

package builder

import (
	"math/rand"
)

// BuilderOption customizes a builderConfig before construction begins.
// Option constructors validate eagerly and panic on meaningless inputs.
type BuilderOption func(*builderConfig)

// WithNameScheme sets the star naming function. Panics on nil.
func WithNameScheme(fn NameFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}
	return func(c *builderConfig) {
		c.nameFn = fn
	}
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed for
// reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a fresh RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the jump cost. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithWTNFn overrides the per-star world-trade-number. Panics on nil.
func WithWTNFn(fn WTNFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWTNFn(nil)")
	}
	return func(c *builderConfig) {
		c.wtnFn = fn
	}
}
