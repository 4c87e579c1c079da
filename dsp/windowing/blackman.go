package windowing

import "math"

// PeriodicBlackman generates periodic Blackman window weights using the
// conventional coefficients a0=0.42, a1=0.5, a2=0.08.
func PeriodicBlackman(n int) []float64 {
	w := make([]float64, n)
	for i := range n {
		arg := 2 * math.Pi * float64(i) / float64(n)
		w[i] = 0.42 - 0.5*math.Cos(arg) + 0.08*math.Cos(2*arg)
	}
	return w
}
