package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/verdantsound/sonogram/logging"
)

// Source loads a bounded time range of a stored recording. Implementations
// clamp the range to the recording bounds; a range that is empty after
// clamping yields a segment with zero samples, not an error.
type Source interface {
	Load(ctx context.Context, location string, start, end float64, channel int) (*Segment, error)
}

// FFmpegSource decodes stored recordings through an ffmpeg subprocess,
// emitting raw little-endian float64 PCM on a pipe.
type FFmpegSource struct {
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration
	logger      logging.Logger
}

// NewFFmpegSource creates a Source backed by the ffmpeg/ffprobe binaries on
// PATH.
func NewFFmpegSource() *FFmpegSource {
	return &FFmpegSource{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     60 * time.Second,
		logger: logging.WithFields(logging.Fields{
			"component": "ffmpeg_source",
		}),
	}
}

// log returns the configured logger, falling back to the global one so a
// zero-value FFmpegSource stays usable.
func (s *FFmpegSource) log() logging.Logger {
	if s.logger == nil {
		return logging.WithFields(logging.Fields{
			"component": "ffmpeg_source",
		})
	}
	return s.logger
}

// Load decodes [start, end) seconds of the recording at location. A negative
// channel keeps all channels; otherwise only the requested channel is
// decoded.
func (s *FFmpegSource) Load(ctx context.Context, location string, start, end float64, channel int) (*Segment, error) {
	meta, err := s.probe(ctx, location, nil)
	if err != nil {
		return nil, err
	}
	if meta.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSampleRate, location)
	}

	// Clamp the requested range to the recording bounds.
	if start < 0 {
		start = 0
	}
	if meta.Duration > 0 && end > meta.Duration {
		end = meta.Duration
	}
	if end <= start {
		s.log().Warn("empty time range after clamping", logging.Fields{
			"location": location,
			"start":    start,
			"end":      end,
		})
		return &Segment{
			Channels:   [][]float64{{}},
			SampleRate: meta.SampleRate,
			Start:      start,
		}, nil
	}

	channels := meta.Channels
	args := []string{
		"-ss", strconv.FormatFloat(start, 'f', 6, 64),
		"-t", strconv.FormatFloat(end-start, 'f', 6, 64),
		"-i", location,
		"-f", "f64le",
	}
	if channel >= 0 {
		args = append(args, "-af", fmt.Sprintf("pan=mono|c0=c%d", min(channel, meta.Channels-1)))
		channels = 1
	}
	args = append(args, "-v", "error", "pipe:1")

	output, err := s.run(ctx, s.FFmpegPath, args, nil)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	return &Segment{
		Channels:   Deinterleave(samples, channels),
		SampleRate: meta.SampleRate,
		Start:      start,
	}, nil
}

// DecodeBytes decodes an in-memory encoded audio buffer, e.g. audio fetched
// from a third-party archive. The result always has at least one channel.
func DecodeBytes(ctx context.Context, data []byte) (*Segment, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "byte_decoder",
		"bytes":     len(data),
	})

	src := NewFFmpegSource()
	meta, err := src.probe(ctx, "pipe:0", data)
	if err != nil {
		return nil, err
	}
	if meta.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: encoded buffer", ErrMissingSampleRate)
	}

	args := []string{
		"-i", "pipe:0",
		"-f", "f64le",
		"-v", "error",
		"pipe:1",
	}
	output, err := src.run(ctx, src.FFmpegPath, args, data)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded")
	}

	logger.Debug("decoded byte buffer", logging.Fields{
		"sample_rate": meta.SampleRate,
		"channels":    meta.Channels,
		"samples":     len(samples),
	})

	return &Segment{
		Channels:   Deinterleave(samples, meta.Channels),
		SampleRate: meta.SampleRate,
	}, nil
}

type probeResult struct {
	SampleRate int
	Channels   int
	Duration   float64
}

// probe extracts stream parameters with ffprobe. When stdin is non-nil the
// location must be "pipe:0" and the encoded bytes are fed on stdin.
func (s *FFmpegSource) probe(ctx context.Context, location string, stdin []byte) (*probeResult, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate,channels,duration",
		"-print_format", "json",
		location,
	}

	output, err := s.run(ctx, s.FFprobePath, args, stdin)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var parsed struct {
		Streams []struct {
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			Duration   string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &parsed); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", err)
	}
	if len(parsed.Streams) == 0 {
		return nil, fmt.Errorf("no audio stream found in %s", location)
	}

	stream := parsed.Streams[0]
	rate, _ := strconv.Atoi(stream.SampleRate)
	duration, _ := strconv.ParseFloat(stream.Duration, 64)

	channels := stream.Channels
	if channels <= 0 {
		channels = 1
	}

	return &probeResult{
		SampleRate: rate,
		Channels:   channels,
		Duration:   duration,
	}, nil
}

func (s *FFmpegSource) run(ctx context.Context, bin string, args []string, stdin []byte) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			s.log().Error(err, "subprocess failed", logging.Fields{
				"binary": bin,
				"stderr": string(exitError.Stderr),
			})
		}
		return nil, err
	}
	return output, nil
}

// bytesToFloat64 converts raw little-endian float64 PCM to samples.
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		data = data[:len(data)-(len(data)%8)]
	}
	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)
	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}
