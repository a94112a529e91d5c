package integrator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config validation error
var ErrInvalidConfig = errors.New("invalid integrator config")

// Config controls the path tracer's light transport estimate
type Config struct {
	MaxRayDepth               int     // Bounce budget of camera rays; 0 sees emission only
	AreaLightSamples          int     // Samples per area light (hemisphere: per light)
	HemisphereSampling        bool    // Uniform hemisphere instead of light importance sampling
	RussianRouletteMinBounces int     // Bounces taken before Russian roulette can end a path
	ContinuationProbability   float64 // Survival probability once Russian roulette is active
	ShadeNormals              bool    // Debug mode: color hits by their normal
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxRayDepth:               5,
		AreaLightSamples:          4,
		HemisphereSampling:        false,
		RussianRouletteMinBounces: 3,
		ContinuationProbability:   0.7,
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case c.MaxRayDepth < 0:
		return fmt.Errorf("%w: max ray depth %d must not be negative", ErrInvalidConfig, c.MaxRayDepth)
	case c.AreaLightSamples < 1:
		return fmt.Errorf("%w: area light samples %d must be at least 1", ErrInvalidConfig, c.AreaLightSamples)
	case c.RussianRouletteMinBounces < 0:
		return fmt.Errorf("%w: russian roulette min bounces %d must not be negative", ErrInvalidConfig, c.RussianRouletteMinBounces)
	case !(c.ContinuationProbability > 0 && c.ContinuationProbability <= 1):
		return fmt.Errorf("%w: continuation probability %g must be in (0, 1]", ErrInvalidConfig, c.ContinuationProbability)
	}
	return nil
}
