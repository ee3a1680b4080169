// Package stats holds the summary statistics shared by the benchmark and
// spectral reports.
package stats

import (
	"math"
	"sort"
)

// #region stats

// Mean returns the arithmetic mean of xs. An empty slice yields 0.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Percentile returns the p-quantile of xs with p in [0, 1], linearly
// interpolating between the order statistics around index (n-1)*p. An empty
// slice yields 0. Input order does not matter.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	k := float64(len(sorted)-1) * p
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return sorted[int(k)]
	}
	return sorted[int(f)]*(c-k) + sorted[int(c)]*(k-f)
}

// #endregion stats
