package stargraph

// Hex is an axial hex coordinate. The third cube coordinate is derived so
// q + r + s == 0 always holds.
type Hex struct {
	Q int `yaml:"q"`
	R int `yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// Distance returns the number of hex steps between a and b.
func Distance(a, b Hex) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())

	return max(dq, dr, ds)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
