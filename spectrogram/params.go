package spectrogram

import (
	"fmt"
	"math"

	"github.com/verdantsound/sonogram/dsp/spectral"
)

// Mode selects how clipped decibel values map into [0, 1].
type Mode string

const (
	// NormalizeRelative scales by the observed min/max of the current
	// spectrogram. An all-equal input maps to all zeros.
	NormalizeRelative Mode = "relative"

	// NormalizeAbsolute is a fixed linear map from [MinDB, MaxDB],
	// independent of observed data. Required whenever outputs for
	// different recordings must be directly comparable.
	NormalizeAbsolute Mode = "absolute"
)

// Parameters is the immutable configuration of a spectrogram computation.
type Parameters struct {
	// WindowSize is the analysis window length in seconds.
	WindowSize float64 `json:"window_size"`

	// Overlap is the fraction of window overlap between frames, in [0, 1).
	Overlap float64 `json:"overlap"`

	// Window names the window function; unknown names fall back to hann.
	Window string `json:"window"`

	// NFFT is the transform length in samples. Zero defaults to the
	// window length.
	NFFT int `json:"n_fft,omitempty"`

	// MinDB and MaxDB bound the clipped decibel range.
	MinDB float64 `json:"min_db"`
	MaxDB float64 `json:"max_db"`

	// Normalize selects relative or absolute normalization.
	Normalize Mode `json:"normalize"`

	// PCEN enables per-channel energy normalization; PCENStrategy picks
	// the formulation (empty selects the canonical default).
	PCEN         bool   `json:"pcen"`
	PCENStrategy string `json:"pcen_strategy,omitempty"`

	// STFTBackend picks the FFT strategy (empty selects the canonical
	// default).
	STFTBackend string `json:"stft_backend,omitempty"`

	// Channel is the source channel index to analyze.
	Channel int `json:"channel"`

	// FreqMin and FreqMax bound the output frequency band in Hz. A
	// FreqMax of zero means the Nyquist frequency.
	FreqMin float64 `json:"freq_min"`
	FreqMax float64 `json:"freq_max"`

	// PixelWidth and PixelHeight are the rendered output dimensions for
	// the rendering collaborator. Zero keeps the native frames x bins
	// size; the computed matrix itself is never resampled.
	PixelWidth  int `json:"pixel_width,omitempty"`
	PixelHeight int `json:"pixel_height,omitempty"`
}

// DefaultParameters returns the parameter set used by the review UI: 64 ms
// hann windows at 50% overlap, a -100..0 dB range, relative scaling.
func DefaultParameters() Parameters {
	return Parameters{
		WindowSize: 0.064,
		Overlap:    0.5,
		Window:     "hann",
		MinDB:      -100,
		MaxDB:      0,
		Normalize:  NormalizeRelative,
	}
}

// Validate checks every constraint that can be verified without audio. All
// violations wrap ErrInvalidConfiguration.
func (p Parameters) Validate() error {
	if p.WindowSize <= 0 {
		return fmt.Errorf("%w: window_size must be positive: %g", ErrInvalidConfiguration, p.WindowSize)
	}
	if p.Overlap < 0 || p.Overlap >= 1 {
		return fmt.Errorf("%w: overlap must be in [0, 1): %g", ErrInvalidConfiguration, p.Overlap)
	}
	if p.NFFT < 0 {
		return fmt.Errorf("%w: n_fft must be non-negative: %d", ErrInvalidConfiguration, p.NFFT)
	}
	if p.MinDB >= p.MaxDB {
		return fmt.Errorf("%w: min_db (%g) must be below max_db (%g)", ErrInvalidConfiguration, p.MinDB, p.MaxDB)
	}
	if p.Normalize != "" && p.Normalize != NormalizeRelative && p.Normalize != NormalizeAbsolute {
		return fmt.Errorf("%w: unknown normalize mode: %q", ErrInvalidConfiguration, p.Normalize)
	}
	if p.Channel < 0 {
		return fmt.Errorf("%w: channel must be non-negative: %d", ErrInvalidConfiguration, p.Channel)
	}
	if p.FreqMin < 0 {
		return fmt.Errorf("%w: freq_min must be non-negative: %g", ErrInvalidConfiguration, p.FreqMin)
	}
	if p.FreqMax != 0 && p.FreqMax <= p.FreqMin {
		return fmt.Errorf("%w: freq_max (%g) must be above freq_min (%g)", ErrInvalidConfiguration, p.FreqMax, p.FreqMin)
	}
	if p.PixelWidth < 0 || p.PixelHeight < 0 {
		return fmt.Errorf("%w: pixel dimensions must be non-negative: %dx%d", ErrInvalidConfiguration, p.PixelWidth, p.PixelHeight)
	}
	if !spectral.ValidBackend(p.STFTBackend) {
		return fmt.Errorf("%w: unknown stft backend: %q", ErrInvalidConfiguration, p.STFTBackend)
	}
	if !spectral.ValidStrategy(p.PCENStrategy) {
		return fmt.Errorf("%w: unknown pcen strategy: %q", ErrInvalidConfiguration, p.PCENStrategy)
	}
	return nil
}

// WinLength converts the window duration to samples at the given rate.
func (p Parameters) WinLength(sampleRate int) int {
	n := int(math.Round(p.WindowSize * float64(sampleRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// HopLength derives the frame advance: round((1-overlap)*win), floored to at
// least one sample. Overlap of zero therefore yields hop == win.
func (p Parameters) HopLength(sampleRate int) int {
	hop := int(math.Round((1.0 - p.Overlap) * float64(p.WinLength(sampleRate))))
	if hop < 1 {
		hop = 1
	}
	return hop
}

// FFTSize derives the transform length: the configured NFFT, at least the
// window length and never below 2.
func (p Parameters) FFTSize(sampleRate int) int {
	n := p.NFFT
	if win := p.WinLength(sampleRate); n < win {
		n = win
	}
	if n < 2 {
		n = 2
	}
	return n
}
