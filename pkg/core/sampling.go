package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// UniformHemispherePDF is the solid-angle density of SampleUniformHemisphere
const UniformHemispherePDF = 1.0 / (2.0 * math.Pi)

// SampleUniformHemisphere maps a 2D sample to a direction uniformly
// distributed over the +Z hemisphere of a shading frame.
func SampleUniformHemisphere(sample Vec2) Vec3 {
	z := sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleCosineHemisphere maps a 2D sample to a cosine-weighted direction
// over the +Z hemisphere of a shading frame. Its density is cos(theta)/pi.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	d := SamplePointInUnitDisk(sample)
	z := math.Sqrt(math.Max(0, 1.0-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// SamplePointInUnitDisk generates a point in the unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
