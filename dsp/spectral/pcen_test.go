package spectral

import (
	"math"
	"testing"
)

const pcenTolerance = 1e-9

func constantPower(frames, bins int, value float64) [][]float64 {
	out := make([][]float64, frames)
	for t := range out {
		row := make([]float64, bins)
		for k := range row {
			row[k] = value
		}
		out[t] = row
	}
	return out
}

func TestNewPCEN(t *testing.T) {
	def, err := NewPCEN("")
	if err != nil {
		t.Fatal(err)
	}
	if def.Name() != StrategyAGC {
		t.Fatalf("default strategy = %q, want %q", def.Name(), StrategyAGC)
	}

	if _, err := NewPCEN("mystery"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}

	for name := range pcenStrategies {
		p, err := NewPCEN(name)
		if err != nil {
			t.Fatalf("NewPCEN(%q): %v", name, err)
		}
		if p.Name() != name {
			t.Fatalf("Name() = %q, want %q", p.Name(), name)
		}
	}
}

func TestAGCConstantInput(t *testing.T) {
	// With m[0] = x[0] and constant input, the smoother never moves, so
	// every cell equals x/(x^alpha + delta)^r - delta^(-r).
	const x = 4.0
	power := constantPower(8, 3, x)

	out := NewAGC().Apply(power)

	want := x/math.Pow(math.Pow(x, DefaultAlpha)+DefaultDelta, DefaultRoot) -
		math.Pow(DefaultDelta, -DefaultRoot)

	for tIdx, row := range out {
		for k, v := range row {
			if math.Abs(v-want) > pcenTolerance {
				t.Fatalf("out[%d][%d] = %g, want %g", tIdx, k, v, want)
			}
		}
	}
}

func TestSmoothConstantInput(t *testing.T) {
	const x = 1.0
	power := constantPower(6, 2, x)

	out := NewSmooth().Apply(power)

	want := math.Pow(x/math.Pow(x, DefaultAlpha)+DefaultDelta, DefaultRoot) -
		math.Pow(DefaultDelta, DefaultRoot)

	for tIdx, row := range out {
		for k, v := range row {
			if math.Abs(v-want) > pcenTolerance {
				t.Fatalf("out[%d][%d] = %g, want %g", tIdx, k, v, want)
			}
		}
	}
}

func TestAGCZeroInputIsFinite(t *testing.T) {
	out := NewAGC().Apply(constantPower(4, 4, 0))

	want := -math.Pow(DefaultDelta, -DefaultRoot)
	for tIdx, row := range out {
		for k, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("out[%d][%d] is not finite: %g", tIdx, k, v)
			}
			if math.Abs(v-want) > pcenTolerance {
				t.Fatalf("out[%d][%d] = %g, want %g", tIdx, k, v, want)
			}
		}
	}
}

func TestSmoothingTracksHistory(t *testing.T) {
	// Identical current frames must normalize differently when their
	// history differs: the accumulator is threaded through time.
	quietStart := [][]float64{{0.01}, {4.0}}
	loudStart := [][]float64{{4.0}, {4.0}}

	agc := NewAGC()
	a := agc.Apply(quietStart)
	b := agc.Apply(loudStart)

	if math.Abs(a[1][0]-b[1][0]) < 1e-6 {
		t.Fatalf("second frame unaffected by history: %g vs %g", a[1][0], b[1][0])
	}

	// The quiet-history frame sees a smaller smoothed gain and therefore
	// a larger output.
	if a[1][0] <= b[1][0] {
		t.Fatalf("quiet history should boost output: %g <= %g", a[1][0], b[1][0])
	}
}

func TestStrategiesDiverge(t *testing.T) {
	power := constantPower(4, 2, 3.0)

	agc := NewAGC().Apply(power)
	smoothed := NewSmooth().Apply(power)

	if math.Abs(agc[0][0]-smoothed[0][0]) < 1e-6 {
		t.Fatalf("strategies should produce different scales: %g vs %g",
			agc[0][0], smoothed[0][0])
	}
}

func TestApplyEmpty(t *testing.T) {
	if out := NewAGC().Apply(nil); len(out) != 0 {
		t.Fatalf("Apply(nil) = %v, want empty", out)
	}
}
