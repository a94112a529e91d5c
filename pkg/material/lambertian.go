package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) surface
type Diffuse struct {
	Reflectance core.Vec3 // Albedo in [0, 1] per channel
}

// NewDiffuse creates a new diffuse BSDF
func NewDiffuse(reflectance core.Vec3) *Diffuse {
	return &Diffuse{Reflectance: reflectance}
}

// F returns albedo/pi for directions on the same side of the surface
func (d *Diffuse) F(wo, wi core.Vec3) core.Vec3 {
	if cosTheta(wi) <= 0 || cosTheta(wo) <= 0 {
		return core.Vec3{}
	}
	return d.Reflectance.Multiply(1.0 / math.Pi)
}

// Sample draws a cosine-weighted direction, pdf = cos(theta)/pi
func (d *Diffuse) Sample(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Vec3) {
	wi := core.SampleCosineHemisphere(sampler.Get2D())
	pdf := cosTheta(wi) / math.Pi
	if pdf <= 0 {
		return wi, 0, core.Vec3{}
	}
	return wi, pdf, d.F(wo, wi)
}

// Emission returns zero: diffuse surfaces do not glow
func (d *Diffuse) Emission() core.Vec3 {
	return core.Vec3{}
}

// IsDelta returns false
func (d *Diffuse) IsDelta() bool {
	return false
}
