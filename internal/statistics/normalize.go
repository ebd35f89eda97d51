package statistics

// NormalizeToPercent maps value linearly from [lo, hi] onto [0, 100],
// clamping the result. A degenerate range maps everything to 50.
func NormalizeToPercent(value, lo, hi float64) float64 {
	if hi == lo {
		return 50
	}
	return Clamp((value-lo)/(hi-lo)*100, 0, 100)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
