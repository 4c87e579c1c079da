package spectral

import (
	"fmt"
	"math"
)

// amplitudeFloor avoids -Inf when converting silence to decibels.
const amplitudeFloor = 1e-10

// DecibelConverter converts magnitudes to log scale and clips the result
// into a fixed dynamic range.
type DecibelConverter struct {
	MinDB float64
	MaxDB float64
}

// NewDecibelConverter validates the clipping range and creates a converter.
func NewDecibelConverter(minDB, maxDB float64) (*DecibelConverter, error) {
	if minDB >= maxDB {
		return nil, fmt.Errorf("min_db (%g) must be below max_db (%g)", minDB, maxDB)
	}
	return &DecibelConverter{MinDB: minDB, MaxDB: maxDB}, nil
}

// Convert maps every value through 20*log10(max(v, floor)) and clips it into
// [MinDB, MaxDB].
func (c *DecibelConverter) Convert(values [][]float64) [][]float64 {
	out := make([][]float64, len(values))
	for t, row := range values {
		outRow := make([]float64, len(row))
		for k, v := range row {
			db := 20.0 * math.Log10(math.Max(v, amplitudeFloor))
			if db < c.MinDB {
				db = c.MinDB
			} else if db > c.MaxDB {
				db = c.MaxDB
			}
			outRow[k] = db
		}
		out[t] = outRow
	}
	return out
}
