package services

import "gonum.org/v1/gonum/floats"

// MinMaxScale maps values onto [0, 1]. A constant non-empty sequence
// (including a single element) scales to all 1.0 so the sole or tied
// candidates are not arbitrarily penalized; an empty sequence yields an
// empty result.
func MinMaxScale(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	min := floats.Min(values)
	max := floats.Max(values)

	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}

	span := max - min
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}

// inverseMetric maps a non-negative metric so that smaller raw values
// produce larger scores. Applied to distance and price before min-max
// scaling, never after.
func inverseMetric(v float64) float64 {
	return 1 / (v + 1)
}
