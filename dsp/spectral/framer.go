package spectral

import "fmt"

// Framer slices a sample sequence into fixed-length analysis frames under a
// centered convention: the signal is zero-padded by n_fft/2 on both ends so
// that frame i's analysis center aligns to i*hop samples into the original
// signal. Frames that would need samples past the padded end are dropped;
// there are no partial frames.
type Framer struct {
	winLength int
	nFFT      int
	hopLength int
}

// NewFramer validates and creates a framer. nFFT of 0 defaults to winLength.
func NewFramer(winLength, nFFT, hopLength int) (*Framer, error) {
	if winLength < 1 {
		return nil, fmt.Errorf("window length must be >= 1: %d", winLength)
	}
	if nFFT == 0 {
		nFFT = winLength
	}
	if nFFT < winLength || nFFT < 2 {
		return nil, fmt.Errorf("n_fft must be >= max(2, window length): %d", nFFT)
	}
	if hopLength < 1 {
		return nil, fmt.Errorf("hop length must be >= 1: %d", hopLength)
	}

	return &Framer{
		winLength: winLength,
		nFFT:      nFFT,
		hopLength: hopLength,
	}, nil
}

// NFFT returns the transform length.
func (f *Framer) NFFT() int { return f.nFFT }

// HopLength returns the advance between consecutive frames.
func (f *Framer) HopLength() int { return f.hopLength }

// NumFrames returns the frame count for n input samples:
// max(1, (padded - n_fft)/hop + 1) where padded = n + 2*(n_fft/2). Empty
// input yields a single all-zero frame.
func (f *Framer) NumFrames(n int) int {
	padded := n + 2*(f.nFFT/2)
	frames := (padded-f.nFFT)/f.hopLength + 1
	if frames < 1 {
		frames = 1
	}
	return frames
}

// Frames extracts all analysis frames, each of length n_fft, from the padded
// signal. Each frame is an independent buffer safe to window in place.
func (f *Framer) Frames(samples []float64) [][]float64 {
	pad := f.nFFT / 2
	numFrames := f.NumFrames(len(samples))

	frames := make([][]float64, numFrames)
	for i := range numFrames {
		frame := make([]float64, f.nFFT)
		start := i*f.hopLength - pad // index into the unpadded signal

		for j := range f.nFFT {
			idx := start + j
			if idx >= 0 && idx < len(samples) {
				frame[j] = samples[idx]
			}
		}
		frames[i] = frame
	}

	return frames
}
