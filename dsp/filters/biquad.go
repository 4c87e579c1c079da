// Package filters implements the high-pass and low-pass conditioning filters
// applied to decoded audio before spectral analysis.
package filters

import (
	"fmt"
	"math"
)

// biquad is a single second-order section using the cookbook formulas from
// Robert Bristow-Johnson's "Cookbook formulae for audio EQ biquad filter
// coefficients".
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	// Direct form II delay line
	w1, w2 float64
}

func (b *biquad) process(input float64) float64 {
	w := input - b.a1*b.w1 - b.a2*b.w2
	output := b.b0*w + b.b1*b.w1 + b.b2*b.w2

	b.w2 = b.w1
	b.w1 = w

	return output
}

type response int

const (
	lowpass response = iota
	highpass
)

func newBiquad(kind response, sampleRate int, cutoff, q float64) *biquad {
	w0 := 2.0 * math.Pi * cutoff / float64(sampleRate)

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	bq := &biquad{}
	a0 := 1.0 + alpha

	switch kind {
	case lowpass:
		bq.b0 = (1.0 - cosW0) / 2.0
		bq.b1 = 1.0 - cosW0
		bq.b2 = bq.b0
	case highpass:
		bq.b0 = (1.0 + cosW0) / 2.0
		bq.b1 = -(1.0 + cosW0)
		bq.b2 = bq.b0
	}

	bq.b0 /= a0
	bq.b1 /= a0
	bq.b2 /= a0
	bq.a1 = -2.0 * cosW0 / a0
	bq.a2 = (1.0 - alpha) / a0

	return bq
}

// Chain is a cascade of second-order sections forming a Butterworth high-pass
// or low-pass filter of the requested order. Odd orders round up to the next
// even order.
type Chain struct {
	sections []*biquad
}

// NewLowpass creates a Butterworth low-pass cascade.
func NewLowpass(sampleRate int, cutoff float64, order int) (*Chain, error) {
	return newChain(lowpass, sampleRate, cutoff, order)
}

// NewHighpass creates a Butterworth high-pass cascade.
func NewHighpass(sampleRate int, cutoff float64, order int) (*Chain, error) {
	return newChain(highpass, sampleRate, cutoff, order)
}

func newChain(kind response, sampleRate int, cutoff float64, order int) (*Chain, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}
	if cutoff <= 0 || cutoff >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("cutoff must be between 0 and Nyquist (%d Hz): %g", sampleRate/2, cutoff)
	}
	if order < 1 {
		order = 2
	}

	numSections := (order + 1) / 2
	sections := make([]*biquad, numSections)

	// Butterworth pole Q values for a cascade of 2*numSections order:
	// Q_k = 1/(2*cos(pi*(2k+1)/(4*numSections)))
	n := 2 * numSections
	for k := range numSections {
		q := 1.0 / (2.0 * math.Cos(math.Pi*float64(2*k+1)/float64(2*n)))
		sections[k] = newBiquad(kind, sampleRate, cutoff, q)
	}

	return &Chain{sections: sections}, nil
}

// ProcessBuffer filters an entire buffer, returning a new slice. The chain
// carries filter state, so use a fresh chain per discontinuous segment.
func (c *Chain) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	copy(output, input)

	for _, section := range c.sections {
		for i, sample := range output {
			output[i] = section.process(sample)
		}
	}

	return output
}
