package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// BSDF describes how a surface scatters and emits light. All directions are
// unit vectors in the local shading frame (see core.Frame), where the surface
// normal is +Z and wo points back along the incoming ray.
type BSDF interface {
	// F evaluates the scattering function for the pair of directions
	F(wo, wi core.Vec3) core.Vec3

	// Sample draws an incoming direction for wo and returns it together with
	// its solid-angle pdf and the scattering value F(wo, wi)
	Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, pdf float64, f core.Vec3)

	// Emission returns the radiance the surface emits on its own
	Emission() core.Vec3

	// IsDelta reports whether scattering is concentrated in a single
	// direction, in which case F is zero everywhere except sampled directions
	IsDelta() bool
}

// cosTheta returns the cosine of the angle between a local direction and the normal
func cosTheta(w core.Vec3) float64 {
	return w.Z
}

// reflect mirrors a local direction about the normal (+Z)
func reflect(wo core.Vec3) core.Vec3 {
	return core.NewVec3(-wo.X, -wo.Y, wo.Z)
}
