package spectral

import (
	"fmt"
	"math"
)

// Canonical PCEN constants.
const (
	DefaultSmoothing = 0.025
	DefaultAlpha     = 0.98
	DefaultDelta     = 2.0
	DefaultRoot      = 0.5

	// pcenFloor guards the smoother against singularities before any
	// logarithm downstream.
	pcenFloor = 1e-6
)

const (
	// StrategyAGC is the canonical linear-power automatic-gain-control
	// formulation.
	StrategyAGC = "agc"
	// StrategySmooth is the log-domain-derived formulation. It produces a
	// different absolute output scale than StrategyAGC for identical
	// input; a deployment must use exactly one.
	StrategySmooth = "smooth"
)

// PCEN applies per-channel energy normalization to a time x frequency power
// spectrogram, suppressing slowly varying background energy per frequency
// channel.
type PCEN interface {
	Name() string
	Apply(power [][]float64) [][]float64
}

// pcenStrategies is the closed set of formulations, enumerated once at
// start-up and never mutated.
var pcenStrategies = map[string]func() PCEN{
	StrategyAGC:    func() PCEN { return NewAGC() },
	StrategySmooth: func() PCEN { return NewSmooth() },
}

// ValidStrategy reports whether the name (or the empty default) resolves to
// a registered PCEN strategy.
func ValidStrategy(name string) bool {
	if name == "" {
		return true
	}
	_, ok := pcenStrategies[name]
	return ok
}

// NewPCEN constructs the named strategy. An empty name selects the canonical
// default, StrategyAGC.
func NewPCEN(name string) (PCEN, error) {
	if name == "" {
		name = StrategyAGC
	}
	ctor, ok := pcenStrategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown pcen strategy: %q", name)
	}
	return ctor(), nil
}

// smooth computes the exponential moving average of power along the time
// axis per frequency channel: m[t] = s*x[t] + (1-s)*m[t-1], m[0] = x[0].
// The recurrence is strictly sequential in time; the accumulator is threaded
// explicitly through the frame iteration.
func smooth(power [][]float64, s float64) [][]float64 {
	if len(power) == 0 {
		return nil
	}

	numBins := len(power[0])
	smoothed := make([][]float64, len(power))

	acc := make([]float64, numBins)
	copy(acc, power[0])

	for t, row := range power {
		if t > 0 {
			for k, x := range row {
				acc[k] = s*x + (1.0-s)*acc[k]
			}
		}
		out := make([]float64, numBins)
		copy(out, acc)
		smoothed[t] = out
	}

	return smoothed
}

// AGC is the canonical PCEN formulation:
// out = x/(m^alpha + delta)^r - delta^(-r).
type AGC struct {
	Smoothing float64
	Alpha     float64
	Delta     float64
	Root      float64
}

// NewAGC creates the canonical strategy with the default constants.
func NewAGC() *AGC {
	return &AGC{
		Smoothing: DefaultSmoothing,
		Alpha:     DefaultAlpha,
		Delta:     DefaultDelta,
		Root:      DefaultRoot,
	}
}

func (a *AGC) Name() string { return StrategyAGC }

func (a *AGC) Apply(power [][]float64) [][]float64 {
	smoothed := smooth(power, a.Smoothing)
	bias := math.Pow(a.Delta, -a.Root)

	out := make([][]float64, len(power))
	for t, row := range power {
		outRow := make([]float64, len(row))
		for k, x := range row {
			m := math.Max(smoothed[t][k], pcenFloor)
			gain := math.Pow(math.Pow(m, a.Alpha)+a.Delta, a.Root)
			outRow[k] = x/gain - bias
		}
		out[t] = outRow
	}

	return out
}

// Smooth is the log-domain-derived PCEN formulation:
// out = (x/(eps + m)^alpha + delta)^r - delta^r.
type Smooth struct {
	Smoothing float64
	Alpha     float64
	Delta     float64
	Root      float64
}

// NewSmooth creates the alternative strategy with the default constants.
func NewSmooth() *Smooth {
	return &Smooth{
		Smoothing: DefaultSmoothing,
		Alpha:     DefaultAlpha,
		Delta:     DefaultDelta,
		Root:      DefaultRoot,
	}
}

func (s *Smooth) Name() string { return StrategySmooth }

func (s *Smooth) Apply(power [][]float64) [][]float64 {
	smoothed := smooth(power, s.Smoothing)
	bias := math.Pow(s.Delta, s.Root)

	out := make([][]float64, len(power))
	for t, row := range power {
		outRow := make([]float64, len(row))
		for k, x := range row {
			m := math.Max(smoothed[t][k], pcenFloor)
			outRow[k] = math.Pow(x/math.Pow(m, s.Alpha)+s.Delta, s.Root) - bias
		}
		out[t] = outRow
	}

	return out
}
