package windowing

import "math"

// PeriodicHann generates periodic Hann window weights.
// w[i] = 0.5 * (1 - cos(2*pi*i/N))
func PeriodicHann(n int) []float64 {
	w := make([]float64, n)
	for i := range n {
		w[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}
