package windowing

import "math"

// PeriodicBartlett generates periodic Bartlett (triangular) window weights.
// The triangle peaks at i = N/2 and does not return to zero at the final
// sample, matching the periodic convention.
func PeriodicBartlett(n int) []float64 {
	w := make([]float64, n)
	for i := range n {
		w[i] = 1.0 - math.Abs(2.0*float64(i)/float64(n)-1.0)
	}
	return w
}
