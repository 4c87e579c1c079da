package main

import (
	"testing"

	"github.com/verdantsound/sonogram/spectrogram"
)

func gradientSpec(bins, frames int) *spectrogram.Spectrogram {
	values := make([][]float64, bins)
	freqs := make([]float64, bins)
	for k := range values {
		row := make([]float64, frames)
		for t := range row {
			row[t] = float64(k) / float64(bins-1)
		}
		values[k] = row
		freqs[k] = float64(k)
	}
	times := make([]float64, frames)
	for t := range times {
		times[t] = float64(t)
	}
	return &spectrogram.Spectrogram{Values: values, Freqs: freqs, Times: times}
}

func TestRenderImageNativeSize(t *testing.T) {
	spec := gradientSpec(16, 10)

	img, err := renderImage(spec, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 16 {
		t.Fatalf("native image is %dx%d, want 10x16", bounds.Dx(), bounds.Dy())
	}

	// Lowest frequency (darkest row of the gradient) sits at the bottom.
	if bottom := img.GrayAt(0, 15).Y; bottom != 0 {
		t.Fatalf("bottom row = %d, want 0", bottom)
	}
	if top := img.GrayAt(0, 0).Y; top != 255 {
		t.Fatalf("top row = %d, want 255", top)
	}
}

func TestRenderImagePixelDimensions(t *testing.T) {
	spec := gradientSpec(16, 10)

	img, err := renderImage(spec, 640, 480)
	if err != nil {
		t.Fatal(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Fatalf("scaled image is %dx%d, want 640x480", bounds.Dx(), bounds.Dy())
	}

	// Orientation survives scaling.
	if bottom := img.GrayAt(0, 479).Y; bottom != 0 {
		t.Fatalf("scaled bottom row = %d, want 0", bottom)
	}
	if top := img.GrayAt(639, 0).Y; top != 255 {
		t.Fatalf("scaled top row = %d, want 255", top)
	}
}

func TestRenderImageEmpty(t *testing.T) {
	if _, err := renderImage(&spectrogram.Spectrogram{}, 100, 100); err == nil {
		t.Fatal("expected error for empty spectrogram")
	}
}
