package lights

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// UniformEnvironment returns the same radiance in every direction
type UniformEnvironment struct {
	Radiance core.Vec3
}

// NewUniformEnvironment creates a new uniform environment
func NewUniformEnvironment(radiance core.Vec3) *UniformEnvironment {
	return &UniformEnvironment{Radiance: radiance}
}

// SampleDir implements the Environment interface
func (ue *UniformEnvironment) SampleDir(direction core.Vec3) core.Vec3 {
	return ue.Radiance
}

// GradientEnvironment blends from Bottom (looking down) to Top (looking up)
type GradientEnvironment struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientEnvironment creates a new sky gradient environment
func NewGradientEnvironment(top, bottom core.Vec3) *GradientEnvironment {
	return &GradientEnvironment{Top: top, Bottom: bottom}
}

// SampleDir implements the Environment interface
func (ge *GradientEnvironment) SampleDir(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0) // Map Y from [-1,1] to [0,1]
	return ge.Bottom.Multiply(1.0 - t).Add(ge.Top.Multiply(t))
}
