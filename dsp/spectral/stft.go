package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/verdantsound/sonogram/audio"
)

// STFT is the short-time Fourier transform engine. It windows each analysis
// frame, transforms it to a one-sided spectrum, and scales squared magnitudes
// to power-spectral-density units of 1/(rate * sum(window^2)).
type STFT struct {
	framer      *Framer
	transformer Transformer
	window      []float64 // length nFFT, original window centered
	sampleRate  int
	scale       float64
}

// NewSTFT creates an STFT engine. The window length defines the analysis
// length; nFFT of 0 defaults to it. A non-positive sample rate is a fatal
// configuration error since the frequency scale cannot be derived.
func NewSTFT(window []float64, nFFT, hopLength, sampleRate int, backend string) (*STFT, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", audio.ErrMissingSampleRate, sampleRate)
	}
	if len(window) == 0 {
		return nil, fmt.Errorf("empty window")
	}

	framer, err := NewFramer(len(window), nFFT, hopLength)
	if err != nil {
		return nil, err
	}

	transformer, err := NewTransformer(backend, framer.NFFT())
	if err != nil {
		return nil, err
	}

	// Center the window within the transform length; samples outside the
	// window length are zero-padded.
	padded := make([]float64, framer.NFFT())
	copy(padded[(framer.NFFT()-len(window))/2:], window)

	energy := floats.Dot(window, window)
	if energy == 0 {
		return nil, fmt.Errorf("window has zero energy")
	}

	return &STFT{
		framer:      framer,
		transformer: transformer,
		window:      padded,
		sampleRate:  sampleRate,
		scale:       1.0 / (float64(sampleRate) * energy),
	}, nil
}

// NFFT returns the transform length.
func (s *STFT) NFFT() int { return s.framer.NFFT() }

// HopLength returns the advance between consecutive frames.
func (s *STFT) HopLength() int { return s.framer.HopLength() }

// NumBins returns the one-sided bin count, nFFT/2 + 1.
func (s *STFT) NumBins() int { return s.framer.NFFT()/2 + 1 }

// Backend returns the name of the FFT strategy in use.
func (s *STFT) Backend() string { return s.transformer.Name() }

// Compute returns the one-sided power spectrogram as a time x frequency
// matrix. All bins except DC and, for even nFFT, Nyquist are doubled to
// compensate for discarding the negative-frequency half.
func (s *STFT) Compute(samples []float64) [][]float64 {
	nFFT := s.framer.NFFT()
	numBins := s.NumBins()
	frames := s.framer.Frames(samples)

	power := make([][]float64, len(frames))
	for t, frame := range frames {
		for j := range frame {
			frame[j] *= s.window[j]
		}

		coeffs := s.transformer.Transform(frame)

		row := make([]float64, numBins)
		for k, c := range coeffs {
			re, im := real(c), imag(c)
			p := (re*re + im*im) * s.scale
			if k != 0 && !(nFFT%2 == 0 && k == numBins-1) {
				p *= 2.0
			}
			row[k] = p
		}
		power[t] = row
	}

	return power
}
