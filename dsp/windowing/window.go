// Package windowing generates analysis window weights for spectral
// estimation. All variants are periodic (DFT-even) rather than
// symmetric-endpoint, which is the correct convention for averaged
// spectrograms.
package windowing

// Type names a window function.
type Type string

const (
	Hann     Type = "hann"
	Hamming  Type = "hamming"
	Bartlett Type = "bartlett"
	Blackman Type = "blackman"
)

// generators is the closed set of window generators, enumerated once at
// start-up. Aliased "<name>_window" keys support the fallback resolution in
// Generate; the map is never mutated after initialization.
var generators = map[Type]func(n int) []float64{
	Hann:              PeriodicHann,
	Hamming:           PeriodicHamming,
	Bartlett:          PeriodicBartlett,
	Blackman:          PeriodicBlackman,
	"hann_window":     PeriodicHann,
	"hamming_window":  PeriodicHamming,
	"bartlett_window": PeriodicBartlett,
	"blackman_window": PeriodicBlackman,
}

// Generate returns n non-negative weights for the named window type. Unknown
// names resolve in order: the name itself, the name with a "_window" suffix,
// and finally Hann. n <= 0 degenerates to a single unit weight.
func Generate(name string, n int) []float64 {
	if n <= 0 {
		return []float64{1.0}
	}

	if gen, ok := generators[Type(name)]; ok {
		return gen(n)
	}
	if gen, ok := generators[Type(name+"_window")]; ok {
		return gen(n)
	}
	return PeriodicHann(n)
}

// Supported reports whether the name resolves to a generator without falling
// back to Hann.
func Supported(name string) bool {
	if _, ok := generators[Type(name)]; ok {
		return true
	}
	_, ok := generators[Type(name+"_window")]
	return ok
}
