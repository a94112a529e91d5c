package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ErrInvalidToneMap is wrapped by ToneMap validation errors
var ErrInvalidToneMap = errors.New("invalid tone map")

// ToneMap converts HDR radiance to display values with Reinhard's global
// operator followed by gamma correction
type ToneMap struct {
	Gamma float64 // Display gamma
	Level float64 // Exposure multiplier applied before mapping
	Key   float64 // Target middle grey
	White float64 // Smallest luminance mapped to pure white
}

// DefaultToneMap returns sensible default values
func DefaultToneMap() ToneMap {
	return ToneMap{
		Gamma: 2.2,
		Level: 1.0,
		Key:   0.18,
		White: 5.0,
	}
}

// Validate reports the first out-of-range field
func (tm ToneMap) Validate() error {
	switch {
	case tm.Gamma <= 0:
		return fmt.Errorf("%w: gamma %g must be positive", ErrInvalidToneMap, tm.Gamma)
	case tm.Level <= 0:
		return fmt.Errorf("%w: level %g must be positive", ErrInvalidToneMap, tm.Level)
	case tm.Key <= 0:
		return fmt.Errorf("%w: key %g must be positive", ErrInvalidToneMap, tm.Key)
	case tm.White <= 0:
		return fmt.Errorf("%w: white %g must be positive", ErrInvalidToneMap, tm.White)
	}
	return nil
}

// Map tone maps one radiance value given the image's log-average luminance
func (tm ToneMap) Map(radiance core.Vec3, logAverage float64) core.Vec3 {
	c := radiance.Multiply(tm.Level)
	lum := c.Luminance()
	if lum <= 0 || logAverage <= 0 {
		return core.Vec3{}
	}

	scaled := lum * tm.Key / logAverage
	display := scaled * (1 + scaled/(tm.White*tm.White)) / (1 + scaled)
	c = c.Multiply(display / lum)

	inv := 1.0 / tm.Gamma
	return core.NewVec3(
		math.Pow(math.Max(0, c.X), inv),
		math.Pow(math.Max(0, c.Y), inv),
		math.Pow(math.Max(0, c.Z), inv),
	).Clamp(0, 1)
}

// Color tone maps one radiance value into an 8-bit color
func (tm ToneMap) Color(radiance core.Vec3, logAverage float64) color.RGBA {
	c := tm.Map(radiance, logAverage)
	return color.RGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255}
}
