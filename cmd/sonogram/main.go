// Command sonogram renders spectrograms of stored recordings for quick
// inspection outside the review UI.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/verdantsound/sonogram/audio"
	"github.com/verdantsound/sonogram/spectrogram"
)

var (
	renderInput   string
	renderOutput  string
	renderStart   float64
	renderEnd     float64
	renderPreset  string
	renderChannel int
)

var rootCmd = &cobra.Command{
	Use:   "sonogram",
	Short: "Spectrogram computation for bioacoustic recordings",
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a recording's spectrogram to a grayscale PNG",
	Long: `Decode a time range of a recording, compute its spectrogram, and
write the result as a grayscale PNG (low frequencies at the bottom).

Parameters default to the review UI preset and can be overridden with a
YAML preset file:

  window_size: 0.064
  overlap: 0.5
  window: hann
  min_db: -100
  max_db: 0
  normalize: absolute
  pcen: true
  freq_min: 500
  freq_max: 8000

Examples:
  sonogram render --input rec.wav --output rec.png
  sonogram render --input rec.flac --start 12.5 --end 17.5 --preset bats.yaml`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "", "input recording path (required)")
	renderCmd.Flags().StringVar(&renderOutput, "output", "spectrogram.png", "output PNG path")
	renderCmd.Flags().Float64Var(&renderStart, "start", 0, "range start in seconds")
	renderCmd.Flags().Float64Var(&renderEnd, "end", 60, "range end in seconds")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "YAML parameter preset file")
	renderCmd.Flags().IntVar(&renderChannel, "channel", 0, "channel index to analyze")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderInput == "" {
		return fmt.Errorf("--input is required")
	}

	params, err := loadPreset(renderPreset)
	if err != nil {
		return err
	}
	params.Channel = renderChannel

	pipeline, err := spectrogram.NewPipeline(params, audio.DefaultParams())
	if err != nil {
		return err
	}

	spec, err := pipeline.FromSource(context.Background(), audio.NewFFmpegSource(), renderInput, renderStart, renderEnd)
	if err != nil {
		return fmt.Errorf("computing spectrogram: %w", err)
	}

	if err := writePNG(renderOutput, spec, params.PixelWidth, params.PixelHeight); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %s (%d bins x %d frames)\n", renderOutput, spec.NumBins(), spec.NumFrames())
	return nil
}

// presetFile mirrors Parameters for YAML preset loading.
type presetFile struct {
	WindowSize   *float64 `yaml:"window_size"`
	Overlap      *float64 `yaml:"overlap"`
	Window       string   `yaml:"window"`
	NFFT         int      `yaml:"n_fft"`
	MinDB        *float64 `yaml:"min_db"`
	MaxDB        *float64 `yaml:"max_db"`
	Normalize    string   `yaml:"normalize"`
	PCEN         bool     `yaml:"pcen"`
	PCENStrategy string   `yaml:"pcen_strategy"`
	STFTBackend  string   `yaml:"stft_backend"`
	FreqMin      float64  `yaml:"freq_min"`
	FreqMax      float64  `yaml:"freq_max"`
	PixelWidth   int      `yaml:"pixel_width"`
	PixelHeight  int      `yaml:"pixel_height"`
}

// loadPreset merges a YAML preset over the default parameters. Absent keys
// keep their defaults.
func loadPreset(path string) (spectrogram.Parameters, error) {
	params := spectrogram.DefaultParameters()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("reading preset: %w", err)
	}

	var preset presetFile
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return params, fmt.Errorf("parsing preset: %w", err)
	}

	if preset.WindowSize != nil {
		params.WindowSize = *preset.WindowSize
	}
	if preset.Overlap != nil {
		params.Overlap = *preset.Overlap
	}
	if preset.Window != "" {
		params.Window = preset.Window
	}
	if preset.NFFT > 0 {
		params.NFFT = preset.NFFT
	}
	if preset.MinDB != nil {
		params.MinDB = *preset.MinDB
	}
	if preset.MaxDB != nil {
		params.MaxDB = *preset.MaxDB
	}
	if preset.Normalize != "" {
		params.Normalize = spectrogram.Mode(preset.Normalize)
	}
	params.PCEN = preset.PCEN
	params.PCENStrategy = preset.PCENStrategy
	params.STFTBackend = preset.STFTBackend
	params.FreqMin = preset.FreqMin
	params.FreqMax = preset.FreqMax
	params.PixelWidth = preset.PixelWidth
	params.PixelHeight = preset.PixelHeight

	return params, nil
}

// renderImage maps the [0,1] matrix to 8-bit grayscale with the lowest
// frequency row at the bottom of the image. Non-positive dimensions keep the
// native frames x bins size; otherwise the matrix is nearest-neighbor sampled
// to the requested pixel dimensions.
func renderImage(spec *spectrogram.Spectrogram, width, height int) (*image.Gray, error) {
	srcWidth := spec.NumFrames()
	srcHeight := spec.NumBins()
	if srcWidth == 0 || srcHeight == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}
	if width <= 0 {
		width = srcWidth
	}
	if height <= 0 {
		height = srcHeight
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := spec.Values[(height-1-y)*srcHeight/height]
		for x := 0; x < width; x++ {
			v := row[x*srcWidth/width]
			img.SetGray(x, y, color.Gray{Y: uint8(v*255.0 + 0.5)})
		}
	}
	return img, nil
}

func writePNG(path string, spec *spectrogram.Spectrogram, width, height int) error {
	img, err := renderImage(spec, width, height)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
