package spectrogram

import (
	"context"
	"fmt"

	"github.com/verdantsound/sonogram/audio"
	"github.com/verdantsound/sonogram/dsp/filters"
	"github.com/verdantsound/sonogram/dsp/spectral"
	"github.com/verdantsound/sonogram/dsp/windowing"
	"github.com/verdantsound/sonogram/logging"
)

// Pipeline sequences the spectrogram stages for the two entry points:
// stored audio behind a Source, and in-memory encoded bytes. Both run the
// identical internal stage order and are numerically consistent for
// equivalent inputs. A Pipeline is stateless across invocations and safe for
// concurrent use.
type Pipeline struct {
	params      Parameters
	audioParams audio.Params
	logger      logging.Logger
}

// NewPipeline validates the configuration and creates a pipeline.
// Configuration errors surface here, before any computation.
func NewPipeline(params Parameters, audioParams audio.Params) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		params:      params,
		audioParams: audioParams,
		logger: logging.WithFields(logging.Fields{
			"component": "spectrogram_pipeline",
		}),
	}, nil
}

// Params returns the pipeline's immutable parameters.
func (p *Pipeline) Params() Parameters { return p.params }

// FromSource computes the spectrogram for [start, end) seconds of a stored
// recording. The source clamps the range to the recording bounds; a range
// that is empty after clamping degrades gracefully to a single zero-filled
// frame.
func (p *Pipeline) FromSource(ctx context.Context, src audio.Source, location string, start, end float64) (*Spectrogram, error) {
	seg, err := src.Load(ctx, location, start, end, p.params.Channel)
	if err != nil {
		return nil, err
	}
	return p.compute(seg.Channel(p.params.Channel), seg.SampleRate, seg.Start)
}

// FromBytes computes the spectrogram for [start, end) seconds of an
// in-memory encoded buffer. Unlike the stored path, decoded audio is
// optionally resampled and band-filtered per the audio parameters before
// analysis.
func (p *Pipeline) FromBytes(ctx context.Context, data []byte, start, end float64) (*Spectrogram, error) {
	seg, err := audio.DecodeBytes(ctx, data)
	if err != nil {
		return nil, err
	}

	seg = seg.Slice(start, end)
	samples := seg.Channel(p.params.Channel)
	rate := seg.SampleRate

	if p.audioParams.Resample && p.audioParams.SampleRate > 0 && rate != p.audioParams.SampleRate {
		samples, err = audio.Resample(samples, rate, p.audioParams.SampleRate)
		if err != nil {
			return nil, err
		}
		rate = p.audioParams.SampleRate
	}

	if p.audioParams.HighpassHz > 0 {
		chain, err := filters.NewHighpass(rate, p.audioParams.HighpassHz, p.audioParams.FilterOrder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		samples = chain.ProcessBuffer(samples)
	}
	if p.audioParams.LowpassHz > 0 {
		chain, err := filters.NewLowpass(rate, p.audioParams.LowpassHz, p.audioParams.FilterOrder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		samples = chain.ProcessBuffer(samples)
	}

	return p.compute(samples, rate, seg.Start)
}

// compute runs the shared stage order: window, STFT, optional PCEN, decibel
// conversion with clipping, normalization, axis construction, band slicing.
func (p *Pipeline) compute(samples []float64, sampleRate int, start float64) (*Spectrogram, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", ErrMissingSampleRate, sampleRate)
	}

	if len(samples) == 0 {
		// Degenerate time range: emit a single zero-filled frame rather
		// than failing the request.
		p.logger.Warn("empty segment, producing zero-filled frame", logging.Fields{
			"start":       start,
			"sample_rate": sampleRate,
		})
	}

	window := windowing.Generate(p.params.Window, p.params.WinLength(sampleRate))

	stft, err := spectral.NewSTFT(window, p.params.FFTSize(sampleRate), p.params.HopLength(sampleRate), sampleRate, p.params.STFTBackend)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	power := stft.Compute(samples)

	if p.params.PCEN {
		pcen, err := spectral.NewPCEN(p.params.PCENStrategy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		power = pcen.Apply(power)
	}

	converter, err := spectral.NewDecibelConverter(p.params.MinDB, p.params.MaxDB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	clipped := converter.Convert(power)

	normalized := Normalize(clipped, p.params.Normalize, p.params.MinDB, p.params.MaxDB)

	spec := &Spectrogram{
		Values: transpose(normalized, stft.NumBins()),
		Freqs:  FrequencyAxis(stft.NFFT(), sampleRate),
		Times:  TimeAxis(len(normalized), start, stft.HopLength(), sampleRate),
	}

	p.logger.Debug("spectrogram computed", logging.Fields{
		"frames":       spec.NumFrames(),
		"bins":         spec.NumBins(),
		"stft_backend": stft.Backend(),
		"pcen":         p.params.PCEN,
	})

	return spec.SliceBand(p.params.FreqMin, p.params.FreqMax), nil
}

// transpose converts a time x frequency matrix into frequency x time.
func transpose(timeMajor [][]float64, numBins int) [][]float64 {
	out := make([][]float64, numBins)
	for k := range out {
		row := make([]float64, len(timeMajor))
		for t := range timeMajor {
			row[t] = timeMajor[t][k]
		}
		out[k] = row
	}
	return out
}
