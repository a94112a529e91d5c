package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Emissive represents a light-emitting surface that scatters nothing
type Emissive struct {
	Radiance core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive BSDF
func NewEmissive(radiance core.Vec3) *Emissive {
	return &Emissive{Radiance: radiance}
}

// F is zero: emitters absorb everything they receive
func (e *Emissive) F(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Sample returns a cosine-weighted direction with a zero scattering value
func (e *Emissive) Sample(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Vec3) {
	wi := core.SampleCosineHemisphere(sampler.Get2D())
	return wi, cosTheta(wi) / math.Pi, core.Vec3{}
}

// Emission returns the emitted radiance
func (e *Emissive) Emission() core.Vec3 {
	return e.Radiance
}

// IsDelta returns false
func (e *Emissive) IsDelta() bool {
	return false
}
