// Package spectral implements windowed spectral analysis: framing, the STFT
// engine with physical-unit scaling, per-channel energy normalization, and
// decibel conversion.
package spectral

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes the one-sided complex spectrum of a real frame of a
// fixed size. Implementations are strategies behind the STFT engine; exactly
// one (BackendGoDSP) is the canonical default.
type Transformer interface {
	Name() string

	// Transform returns size/2+1 coefficients for a frame of exactly the
	// configured size.
	Transform(frame []float64) []complex128
}

const (
	// BackendGoDSP is the canonical FFT backend.
	BackendGoDSP = "godsp"
	// BackendGonum is an alternative backend on gonum's real FFT.
	BackendGonum = "gonum"
)

// transformers is the closed set of FFT backends, enumerated once at
// start-up and never mutated.
var transformers = map[string]func(size int) Transformer{
	BackendGoDSP: func(size int) Transformer { return &goDSPTransformer{size: size} },
	BackendGonum: func(size int) Transformer { return &gonumTransformer{size: size, fft: fourier.NewFFT(size)} },
}

// ValidBackend reports whether the name (or the empty default) resolves to a
// registered FFT backend.
func ValidBackend(name string) bool {
	if name == "" {
		return true
	}
	_, ok := transformers[name]
	return ok
}

// NewTransformer constructs the named FFT backend for the given frame size.
// An empty name selects the canonical default.
func NewTransformer(name string, size int) (Transformer, error) {
	if name == "" {
		name = BackendGoDSP
	}
	ctor, ok := transformers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stft backend: %q", name)
	}
	return ctor(size), nil
}

// goDSPTransformer computes real FFTs with mjibson/go-dsp, which handles
// non-power-of-2 sizes via Bluestein's algorithm.
type goDSPTransformer struct {
	size int
}

func (t *goDSPTransformer) Name() string { return BackendGoDSP }

func (t *goDSPTransformer) Transform(frame []float64) []complex128 {
	full := fft.FFTReal(frame)
	return full[:t.size/2+1]
}

// gonumTransformer computes real FFTs with gonum's fourier package, which
// returns the one-sided spectrum directly.
type gonumTransformer struct {
	size int
	fft  *fourier.FFT
}

func (t *gonumTransformer) Name() string { return BackendGonum }

func (t *gonumTransformer) Transform(frame []float64) []complex128 {
	return t.fft.Coefficients(nil, frame)
}
