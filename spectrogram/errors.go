package spectrogram

import (
	"errors"

	"github.com/verdantsound/sonogram/audio"
)

// ErrInvalidConfiguration wraps every parameter violation detected before
// computation starts: non-positive window/hop/n_fft, overlap outside [0,1),
// min_dB at or above max_dB, or an unknown strategy name. These indicate
// caller error and are never retried.
var ErrInvalidConfiguration = errors.New("spectrogram: invalid configuration")

// ErrMissingSampleRate is re-exported from the audio package for callers
// matching on this library's surface alone.
var ErrMissingSampleRate = audio.ErrMissingSampleRate
