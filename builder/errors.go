// SPDX-License-Identifier: MIT
// Package: altroute/builder
//
// errors.go - sentinel errors for the builder package.

package builder

import (
	"errors"
)

// Sentinel errors returned (wrapped) by constructors.
var (
	// ErrTooFewStars indicates a size parameter below the constructor minimum.
	ErrTooFewStars = errors.New("builder: parameter too small")

	// ErrBadSize indicates a request for more stars than the area can hold.
	ErrBadSize = errors.New("builder: invalid size")

	// ErrNeedRandSource indicates a stochastic constructor without an RNG.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor passed to BuildGraph.
	ErrConstructFailed = errors.New("builder: construction failed")
)
