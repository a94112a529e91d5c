package lights

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // Radiant intensity; radiance falls off with distance²
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// IsDelta implements the Light interface
func (pl *PointLight) IsDelta() bool {
	return true
}

// SampleL implements the Light interface. The sampler is unused: the only
// incident direction is toward the light position.
func (pl *PointLight) SampleL(p core.Vec3, sampler core.Sampler) LightSample {
	toLight := pl.Position.Subtract(p)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return LightSample{}
	}
	distance := math.Sqrt(distSq)

	return LightSample{
		Radiance:  pl.Intensity.Multiply(1.0 / distSq),
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		PDF:       1.0,
	}
}

// DirectionalLight illuminates the scene from a fixed direction at infinity
type DirectionalLight struct {
	ToLight  core.Vec3 // Unit direction from the scene toward the light
	Radiance core.Vec3
}

// NewDirectionalLight creates a directional light shining along direction
func NewDirectionalLight(direction, radiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		ToLight:  direction.Negate().Normalize(),
		Radiance: radiance,
	}
}

// IsDelta implements the Light interface
func (dl *DirectionalLight) IsDelta() bool {
	return true
}

// SampleL implements the Light interface
func (dl *DirectionalLight) SampleL(p core.Vec3, sampler core.Sampler) LightSample {
	return LightSample{
		Radiance:  dl.Radiance,
		Direction: dl.ToLight,
		Distance:  math.Inf(1),
		PDF:       1.0,
	}
}
