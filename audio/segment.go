package audio

import (
	"errors"
	"math"
)

// ErrMissingSampleRate indicates that decoded audio carries no usable sample
// rate. The frequency scale of any downstream analysis cannot be derived, so
// this is fatal and never defaulted.
var ErrMissingSampleRate = errors.New("audio: missing or non-positive sample rate")

// Segment is a transient slice of decoded audio: one or more channels of
// floating-point samples plus the sample rate and the segment's start offset
// in seconds relative to the original recording. A Segment is owned by the
// invocation that produced it and is never persisted.
type Segment struct {
	Channels   [][]float64 `json:"-"`
	SampleRate int         `json:"sample_rate"`
	Start      float64     `json:"start"`
}

// NumSamples returns the per-channel sample count.
func (s *Segment) NumSamples() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Duration returns the segment length in seconds.
func (s *Segment) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(s.NumSamples()) / float64(s.SampleRate)
}

// Channel returns the samples of the requested channel. Out-of-range indices
// clamp to the last available channel so a mono recording satisfies any
// channel request.
func (s *Segment) Channel(idx int) []float64 {
	if len(s.Channels) == 0 {
		return nil
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Channels) {
		idx = len(s.Channels) - 1
	}
	return s.Channels[idx]
}

// Slice returns the sub-segment covering [start, end) in seconds relative to
// the segment's own time base. The range is clamped to the segment bounds; a
// range that is empty after clamping yields a segment with zero samples.
func (s *Segment) Slice(start, end float64) *Segment {
	rate := float64(s.SampleRate)
	n := s.NumSamples()

	lo := int(math.Round(start * rate))
	hi := int(math.Round(end * rate))
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}

	channels := make([][]float64, len(s.Channels))
	for i, ch := range s.Channels {
		channels[i] = ch[lo:hi]
	}

	return &Segment{
		Channels:   channels,
		SampleRate: s.SampleRate,
		Start:      s.Start + float64(lo)/rate,
	}
}

// Deinterleave splits interleaved samples into per-channel buffers.
func Deinterleave(samples []float64, channels int) [][]float64 {
	if channels <= 0 {
		channels = 1
	}

	frames := len(samples) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			out[c][i] = samples[i*channels+c]
		}
	}

	return out
}
