package landmarks

import "math"

// quotaSlack absorbs log10 rounding at exact powers of ten.
const quotaSlack = 1e-9

// MaxSlots caps the landmarks per component; the cap shrinks as route reuse
// grows.
func MaxSlots(routeReuse int) int {
	switch {
	case routeReuse > 500:
		return 10
	case routeReuse > 250:
		return 12
	case routeReuse > 125:
		return 14
	default:
		return 15
	}
}

// Quota returns min(maxSlots, ceil(k · log10(size))), the number of
// landmarks a component of the given size earns. Components smaller than
// two nodes earn none.
func Quota(size int, k float64, maxSlots int) int {
	if size < 2 {
		return 0
	}
	q := int(math.Ceil(k*math.Log10(float64(size)) - quotaSlack))

	return max(0, min(maxSlots, q))
}

// seedFactor is k for the triaxial variant with the given seed count.
func seedFactor(seeds int) float64 {
	if seeds == 6 {
		return 2
	}
	return 2.5
}
