package filters

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

// rms over the tail of the buffer, past the filter's settling transient.
func tailRMS(samples []float64) float64 {
	tail := samples[len(samples)/2:]
	sum := 0.0
	for _, v := range tail {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(tail)))
}

func TestChainValidation(t *testing.T) {
	if _, err := NewLowpass(0, 1000, 4); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewLowpass(8000, 0, 4); err == nil {
		t.Fatal("expected error for zero cutoff")
	}
	if _, err := NewLowpass(8000, -100, 4); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
	if _, err := NewHighpass(8000, 4000, 4); err == nil {
		t.Fatal("expected error for cutoff at Nyquist")
	}
	if _, err := NewHighpass(8000, 200, 4); err != nil {
		t.Fatalf("valid highpass rejected: %v", err)
	}
}

func TestLowpassPassesAndStops(t *testing.T) {
	const (
		sampleRate = 8000
		cutoff     = 1000.0
		n          = 8000
	)

	lp, err := NewLowpass(sampleRate, cutoff, 4)
	if err != nil {
		t.Fatal(err)
	}

	low := lp.ProcessBuffer(sine(100, sampleRate, n))
	if rms := tailRMS(low); rms < 0.6 {
		t.Fatalf("passband tone attenuated: rms = %g", rms)
	}

	lp2, err := NewLowpass(sampleRate, cutoff, 4)
	if err != nil {
		t.Fatal(err)
	}
	high := lp2.ProcessBuffer(sine(3500, sampleRate, n))
	if rms := tailRMS(high); rms > 0.05 {
		t.Fatalf("stopband tone leaked through: rms = %g", rms)
	}
}

func TestHighpassBlocksDC(t *testing.T) {
	const sampleRate = 8000

	hp, err := NewHighpass(sampleRate, 500, 4)
	if err != nil {
		t.Fatal(err)
	}

	dc := make([]float64, 8000)
	for i := range dc {
		dc[i] = 1.0
	}

	out := hp.ProcessBuffer(dc)
	if rms := tailRMS(out); rms > 1e-3 {
		t.Fatalf("DC survived highpass: rms = %g", rms)
	}

	hp2, err := NewHighpass(sampleRate, 500, 4)
	if err != nil {
		t.Fatal(err)
	}
	tone := hp2.ProcessBuffer(sine(3000, sampleRate, 8000))
	if rms := tailRMS(tone); rms < 0.6 {
		t.Fatalf("passband tone attenuated: rms = %g", rms)
	}
}

func TestChainOrderRounding(t *testing.T) {
	// Odd orders round up to the next even order, so order 3 and order 4
	// produce identical output.
	in := sine(700, 8000, 2048)

	c3, err := NewHighpass(8000, 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	c4, err := NewHighpass(8000, 1000, 4)
	if err != nil {
		t.Fatal(err)
	}

	a := c3.ProcessBuffer(in)
	b := c4.ProcessBuffer(in)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order 3 and 4 diverge at %d: %g vs %g", i, a[i], b[i])
		}
	}
}
