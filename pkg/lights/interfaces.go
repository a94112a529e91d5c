package lights

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// Light is a scene light source queried by the integrator for direct lighting
type Light interface {
	// IsDelta reports whether the light has a zero-measure set of incident
	// directions (point, directional). Delta lights need exactly one sample.
	IsDelta() bool

	// SampleL samples an incident direction at point p.
	// Direction points FROM p TOWARD the light and is unit length.
	SampleL(p core.Vec3, sampler core.Sampler) LightSample
}

// LightSample is one incident-light sample at a shading point
type LightSample struct {
	Radiance  core.Vec3 // Radiance arriving at the shading point
	Direction core.Vec3 // Unit direction from the shading point to the light
	Distance  float64   // Distance to the light, +Inf for directional lights
	PDF       float64   // Solid-angle density; 1 for delta lights, 0 for an unusable sample
}

// Environment supplies radiance for rays that escape the scene
type Environment interface {
	SampleDir(direction core.Vec3) core.Vec3
}
