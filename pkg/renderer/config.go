package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is wrapped by every SamplingConfig validation error
var ErrInvalidConfig = errors.New("invalid sampling config")

// SamplingConfig contains per-pixel sampling and scheduling configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Maximum camera rays per pixel
	SamplesPerBatch int     // Convergence is tested every this many samples; <= 0 disables it
	MaxTolerance    float64 // Stop once the 95% confidence half-width is within this fraction of the mean
	TileSize        int     // Edge length of a square tile in pixels
	NumWorkers      int     // Parallel workers (0 = use CPU count)
	Seed            int64   // Base seed for per-tile random generators
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 16,
		SamplesPerBatch: 32,
		MaxTolerance:    0.05,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            1,
	}
}

// Validate reports the first out-of-range field
func (c SamplingConfig) Validate() error {
	switch {
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxTolerance < 0:
		return fmt.Errorf("%w: tolerance %g must not be negative", ErrInvalidConfig, c.MaxTolerance)
	case c.TileSize < 1:
		return fmt.Errorf("%w: tile size %d must be at least 1", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// workers returns the effective worker count
func (c SamplingConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}
