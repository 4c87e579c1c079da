package audio

// Params configures how raw decoded audio is conditioned before analysis.
// Immutable once handed to a pipeline.
type Params struct {
	// SampleRate is the target rate in Hz when Resample is set.
	SampleRate int `json:"sample_rate"`

	// Resample enables sample-rate conversion to SampleRate.
	Resample bool `json:"resample"`

	// HighpassHz and LowpassHz are optional filter cutoffs. Zero disables
	// the corresponding filter.
	HighpassHz float64 `json:"highpass_hz,omitempty"`
	LowpassHz  float64 `json:"lowpass_hz,omitempty"`

	// FilterOrder is the filter order for the cutoff filters. Odd orders
	// round up to the next even order.
	FilterOrder int `json:"filter_order,omitempty"`
}

// DefaultParams returns conditioning defaults: no resampling, no filtering.
func DefaultParams() Params {
	return Params{
		SampleRate:  22050,
		Resample:    false,
		FilterOrder: 4,
	}
}
