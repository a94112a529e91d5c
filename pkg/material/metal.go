package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Mirror represents a perfect specular reflector
type Mirror struct {
	Reflectance core.Vec3
}

// NewMirror creates a new mirror BSDF
func NewMirror(reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// F is zero for any pair of directions chosen independently of Sample
func (m *Mirror) F(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Sample returns the perfect reflection of wo. The scattering value is
// divided by |cos(theta)| so that f*cos/pdf equals the reflectance.
func (m *Mirror) Sample(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Vec3) {
	wi := reflect(wo)
	cos := math.Abs(cosTheta(wi))
	if cos == 0 {
		return wi, 0, core.Vec3{}
	}
	return wi, 1.0, m.Reflectance.Multiply(1.0 / cos)
}

// Emission returns zero
func (m *Mirror) Emission() core.Vec3 {
	return core.Vec3{}
}

// IsDelta returns true
func (m *Mirror) IsDelta() bool {
	return true
}
