package spectral

import (
	"math"
	"testing"
)

func TestNewDecibelConverterValidation(t *testing.T) {
	if _, err := NewDecibelConverter(-100, 0); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if _, err := NewDecibelConverter(0, 0); err == nil {
		t.Fatal("expected error for min == max")
	}
	if _, err := NewDecibelConverter(10, -10); err == nil {
		t.Fatal("expected error for min > max")
	}
}

func TestConvert(t *testing.T) {
	c, err := NewDecibelConverter(-100, 0)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		in   float64
		want float64
	}{
		{1.0, 0},      // 0 dB
		{10.0, 0},     // +20 dB clips to ceiling
		{0.0, -100},   // floor: 20*log10(1e-10) = -200 clips to -100
		{1e-3, -60},   // inside the range
		{0.1, -20},    // inside the range
		{1e-20, -100}, // below the amplitude floor
	}

	for _, tc := range cases {
		out := c.Convert([][]float64{{tc.in}})
		if math.Abs(out[0][0]-tc.want) > 1e-9 {
			t.Fatalf("Convert(%g) = %g, want %g", tc.in, out[0][0], tc.want)
		}
	}
}

func TestConvertPreservesShape(t *testing.T) {
	c, err := NewDecibelConverter(-80, -20)
	if err != nil {
		t.Fatal(err)
	}

	in := [][]float64{{1, 0.5, 0}, {0.25, 2, 1e-6}}
	out := c.Convert(in)

	if len(out) != len(in) {
		t.Fatalf("row count %d, want %d", len(out), len(in))
	}
	for i := range out {
		if len(out[i]) != len(in[i]) {
			t.Fatalf("row %d length %d, want %d", i, len(out[i]), len(in[i]))
		}
		for j, v := range out[i] {
			if v < -80 || v > -20 {
				t.Fatalf("out[%d][%d] = %g outside [-80, -20]", i, j, v)
			}
		}
	}
}
