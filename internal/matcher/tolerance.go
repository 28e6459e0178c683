package matcher

import "math"

// Tolerance is the adaptive duration window. Two known durations agree when
// their difference is at most max(FloorSeconds, ceil(Fraction * shorter)).
// Scaling by the shorter duration keeps the window fixed as the other side
// grows, so 1000 s accepts 1020 and rejects 1021.
type Tolerance struct {
	FloorSeconds int
	Fraction     float64
}

// DefaultTolerance allows 3 seconds or 2%, whichever is larger.
func DefaultTolerance() Tolerance {
	return Tolerance{FloorSeconds: 3, Fraction: 0.02}
}

// Allowed returns the permitted difference between a and b.
func (t Tolerance) Allowed(a, b int) int {
	shorter := min(a, b)
	relative := 0
	if t.Fraction > 0 && shorter > 0 {
		// Guard against products like 0.02*1000 landing a hair above 20.
		relative = int(math.Ceil(t.Fraction*float64(shorter) - 1e-9))
	}
	return max(t.FloorSeconds, relative)
}

// Within reports whether a and b agree. Zero or negative durations are unknown
// and always agree.
func (t Tolerance) Within(a, b int) bool {
	if a <= 0 || b <= 0 {
		return true
	}
	return abs(a-b) <= t.Allowed(a, b)
}

// Delta is the distance used for tie-breaks; unknown durations are distance zero.
func (t Tolerance) Delta(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return abs(a - b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
