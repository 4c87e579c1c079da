package windowing

import "math"

// PeriodicHamming generates periodic Hamming window weights.
// w[i] = 0.54 - 0.46*cos(2*pi*i/N)
func PeriodicHamming(n int) []float64 {
	w := make([]float64, n)
	for i := range n {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
