package utils

import "math"

// Mean returns the arithmetic mean of values, or NaN when values is empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// SampleStdDev returns the standard deviation with Bessel's correction (n-1).
// It is NaN for fewer than two values.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}

	mean := Mean(values)

	var squaredDiffSum float64

	for _, v := range values {
		diff := v - mean
		squaredDiffSum += diff * diff
	}

	return math.Sqrt(squaredDiffSum / float64(len(values)-1))
}

// PctChange returns the period-over-period relative change. The first entry has no
// predecessor and is omitted, so the result is one shorter than values.
func PctChange(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	changes := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes[i-1] = values[i]/values[i-1] - 1
	}

	return changes
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MinMax returns the smallest and largest value. Both are NaN for an empty slice.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return lo, hi
}

// SampleCovariance returns the covariance of a and b with Bessel's correction.
// It is NaN when the slices differ in length or hold fewer than two values.
func SampleCovariance(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return math.NaN()
	}

	meanA, meanB := Mean(a), Mean(b)

	var sum float64
	for i := range a {
		sum += (a[i] - meanA) * (b[i] - meanB)
	}

	return sum / float64(len(a)-1)
}
