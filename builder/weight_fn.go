package builder

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/travellermap/altroute/stargraph"
)

// DefaultParsecCost is the cost of one parsec under DefaultWeightFn.
const DefaultParsecCost float64 = 1

// WeightFn returns the cost of a jump of the given length in parsecs.
// Stochastic implementations draw from rng and fall back to a deterministic
// value when rng is nil. Results must be finite and ≥ 0.
type WeightFn func(rng *rand.Rand, jump int) float64

// DefaultWeightFn charges DefaultParsecCost per parsec.
func DefaultWeightFn(_ *rand.Rand, jump int) float64 {
	return DefaultParsecCost * float64(jump)
}

// ConstantWeightFn returns value for every jump. Panics if value < 0.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %g", value))
	}
	return func(_ *rand.Rand, _ int) float64 {
		return value
	}
}

// UniformWeightFn draws an integer cost per parsec uniformly from
// [min, max] and multiplies it by the jump length, so longer jumps always
// cost at least as much as min·jump. Without an RNG it charges min per
// parsec. Panics unless 0 ≤ min ≤ max.
func UniformWeightFn(min, max int) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand, jump int) float64 {
		per := min
		if rng != nil && max > min {
			per += rng.Intn(max - min + 1)
		}
		return float64(per * jump)
	}
}

// TableWeightFn looks the cost up by jump length: table[jump-1]. Jumps
// beyond the table are charged the last entry per extra parsec on top of
// it. Panics on an empty table or a negative entry.
func TableWeightFn(table ...float64) WeightFn {
	if len(table) == 0 {
		panic("TableWeightFn: empty table")
	}
	for i, v := range table {
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			panic(fmt.Sprintf("TableWeightFn: entry %d must be finite and ≥ 0, got %g", i, v))
		}
	}
	last := table[len(table)-1]
	return func(_ *rand.Rand, jump int) float64 {
		if jump <= len(table) {
			return table[jump-1]
		}
		return last + last*float64(jump-len(table))
	}
}

// WithConstantWeight is WithWeightFn(ConstantWeightFn(w)).
func WithConstantWeight(w float64) BuilderOption {
	return WithWeightFn(ConstantWeightFn(w))
}

// WithUniformWeight is WithWeightFn(UniformWeightFn(min, max)).
func WithUniformWeight(min, max int) BuilderOption {
	return WithWeightFn(UniformWeightFn(min, max))
}

// WithTableWeight is WithWeightFn(TableWeightFn(table...)).
func WithTableWeight(table ...float64) BuilderOption {
	return WithWeightFn(TableWeightFn(table...))
}

// WTNFn returns the world-trade-number of a star placed at h.
type WTNFn func(rng *rand.Rand, h stargraph.Hex) float64

// DefaultWTNFn rates every star 0.
func DefaultWTNFn(_ *rand.Rand, _ stargraph.Hex) float64 {
	return 0
}

// UniformWTNFn draws an integer WTN uniformly from [min, max]; without an
// RNG it returns min. Panics if max < min.
func UniformWTNFn(min, max int) WTNFn {
	if max < min {
		panic(fmt.Sprintf("UniformWTNFn: require min ≤ max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand, _ stargraph.Hex) float64 {
		if rng == nil || max == min {
			return float64(min)
		}
		return float64(min + rng.Intn(max-min+1))
	}
}

// CentralWTNFn rates stars by closeness to the origin: peak at the origin,
// one less per parsec, never below floor.
func CentralWTNFn(peak, floor float64) WTNFn {
	if floor > peak {
		panic(fmt.Sprintf("CentralWTNFn: floor %g above peak %g", floor, peak))
	}
	return func(_ *rand.Rand, h stargraph.Hex) float64 {
		return math.Max(floor, peak-float64(stargraph.Distance(h, stargraph.Hex{})))
	}
}

// WithUniformWTN is WithWTNFn(UniformWTNFn(min, max)).
func WithUniformWTN(min, max int) BuilderOption {
	return WithWTNFn(UniformWTNFn(min, max))
}

// WithCentralWTN is WithWTNFn(CentralWTNFn(peak, floor)).
func WithCentralWTN(peak, floor float64) BuilderOption {
	return WithWTNFn(CentralWTNFn(peak, floor))
}
