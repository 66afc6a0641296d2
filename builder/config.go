// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// config.go - internal configuration and deterministic defaults.

package builder

import (
	"math/rand"
)

// builderConfig is the resolved, immutable configuration seen by every
// constructor of one BuildGraph call.
type builderConfig struct {
	nameFn   NameFn
	rng      *rand.Rand // nil unless WithSeed or WithRand is given
	weightFn WeightFn
	wtnFn    WTNFn
}

// newBuilderConfig applies opts over the defaults: decimal names, one cost
// unit per parsec, constant WTN and no RNG.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		nameFn:   DefaultNameFn,
		weightFn: DefaultWeightFn,
		wtnFn:    DefaultWTNFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
