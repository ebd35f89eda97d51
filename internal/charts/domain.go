package charts

import "math"

// Domain is a closed [Min, Max] axis range.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max-Min.
func (d Domain) Span() float64 {
	return d.Max - d.Min
}

// paddedPercentDomain rounds lo down and hi up to multiples of 5, adds 5 of
// padding on both sides and clamps the result to [0, 100].
func paddedPercentDomain(lo, hi float64) Domain {
	return Domain{
		Min: math.Max(0, math.Floor(lo/5)*5-5),
		Max: math.Min(100, math.Ceil(hi/5)*5+5),
	}
}

// minMax returns the extremes of values, which must be non-empty.
func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
