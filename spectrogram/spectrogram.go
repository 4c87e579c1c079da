// Package spectrogram converts bounded audio segments into normalized,
// frequency/time-indexed magnitude representations for visualization and
// analyst review.
package spectrogram

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Spectrogram is a frequency x time matrix of values in [0, 1] (or in
// [MinDB, MaxDB] before normalization) with ascending frequency and
// absolute-time axes attached. Immutable once constructed; ownership
// transfers entirely to the caller.
type Spectrogram struct {
	// Values is indexed [frequency bin][time frame].
	Values [][]float64 `json:"values"`

	// Freqs holds the bin center frequencies in Hz, ascending.
	Freqs []float64 `json:"frequencies"`

	// Times holds the frame center timestamps in seconds, ascending,
	// absolute relative to the original recording.
	Times []float64 `json:"times"`
}

// NumBins returns the frequency bin count.
func (s *Spectrogram) NumBins() int { return len(s.Freqs) }

// NumFrames returns the time frame count.
func (s *Spectrogram) NumFrames() int { return len(s.Times) }

// SliceBand returns the rows covering [freqMin, freqMax): from the first bin
// at or above freqMin up to but excluding the first bin at or above freqMax.
// Excluding freqMax's own bin prevents double counting across adjacent slice
// calls. A freqMax of zero means the Nyquist frequency.
func (s *Spectrogram) SliceBand(freqMin, freqMax float64) *Spectrogram {
	lo := sort.SearchFloat64s(s.Freqs, freqMin)
	hi := len(s.Freqs)
	if freqMax > 0 {
		hi = sort.SearchFloat64s(s.Freqs, freqMax)
	}
	if hi < lo {
		hi = lo
	}

	return &Spectrogram{
		Values: s.Values[lo:hi],
		Freqs:  s.Freqs[lo:hi],
		Times:  s.Times,
	}
}

// FrequencyAxis returns nFFT/2+1 evenly spaced values from 0 to rate/2 with
// step rate/nFFT.
func FrequencyAxis(nFFT, sampleRate int) []float64 {
	step := float64(sampleRate) / float64(nFFT)
	freqs := make([]float64, nFFT/2+1)
	for i := range freqs {
		freqs[i] = float64(i) * step
	}
	return freqs
}

// TimeAxis returns numFrames evenly spaced timestamps with step hop/rate.
// Frames are labeled by their temporal center, so the first value sits half
// a hop past the segment start.
func TimeAxis(numFrames int, start float64, hopLength, sampleRate int) []float64 {
	step := float64(hopLength) / float64(sampleRate)
	times := make([]float64, numFrames)
	for i := range times {
		times[i] = start + float64(i)*step + step/2.0
	}
	return times
}

// Normalize maps clipped decibel values into [0, 1] and returns a new
// matrix. Relative mode scales by the observed min/max of this matrix, with
// an all-equal input mapped to all zeros; absolute mode applies the fixed
// linear map from [minDB, maxDB].
func Normalize(values [][]float64, mode Mode, minDB, maxDB float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}

	lo, hi := minDB, maxDB
	if mode != NormalizeAbsolute {
		lo = floats.Min(values[0])
		hi = floats.Max(values[0])
		for _, row := range values[1:] {
			lo = min(lo, floats.Min(row))
			hi = max(hi, floats.Max(row))
		}
		if hi-lo < 1e-10 {
			// Constant input: no contrast to scale
			out := make([][]float64, len(values))
			for i, row := range values {
				out[i] = make([]float64, len(row))
			}
			return out
		}
	}

	span := hi - lo
	out := make([][]float64, len(values))
	for i, row := range values {
		outRow := make([]float64, len(row))
		for j, v := range row {
			scaled := (v - lo) / span
			if scaled < 0 {
				scaled = 0
			} else if scaled > 1 {
				scaled = 1
			}
			outRow[j] = scaled
		}
		out[i] = outRow
	}
	return out
}
