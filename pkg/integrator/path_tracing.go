package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// Epsilon offsets secondary rays from the surface they leave
const Epsilon = 1e-4

// PathTracer estimates radiance along rays with unidirectional path tracing.
// It holds only immutable data and is safe for concurrent use; the sampler
// and traversal stats passed to each call belong to the caller.
type PathTracer struct {
	config Config
	scene  *scene.Scene
}

// NewPathTracer creates a path tracer for a built scene
func NewPathTracer(s *scene.Scene, config Config) *PathTracer {
	return &PathTracer{config: config, scene: s}
}

// Config returns the integrator configuration
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Components splits a radiance estimate by the number of bounces that
// produced it
type Components struct {
	Emitted  core.Vec3 // Surface emission, or environment radiance on a miss
	Direct   core.Vec3 // One bounce: light reaching the hit straight from lights
	Indirect core.Vec3 // Two or more bounces
	Hit      bool      // Whether the camera ray hit geometry
	T        float64   // Hit distance when Hit is set
	Normal   core.Vec3 // Shading normal when Hit is set
}

// Total returns the combined radiance
func (c Components) Total() core.Vec3 {
	return c.Emitted.Add(c.Direct).Add(c.Indirect)
}

// shadingPoint is a hit prepared for BSDF evaluation
type shadingPoint struct {
	p     core.Vec3 // Hit position
	n     core.Vec3 // Normal facing the incoming ray
	frame core.Frame
	wo    core.Vec3 // Local direction back along the incoming ray
	bsdf  material.BSDF
}

func newShadingPoint(ray core.Ray, isect *geometry.Intersection) shadingPoint {
	n := isect.Normal
	if n.Dot(ray.Direction) > 0 {
		n = n.Negate()
	}
	frame := core.NewFrame(n)
	return shadingPoint{
		p:     ray.At(isect.T),
		n:     n,
		frame: frame,
		wo:    frame.ToLocal(ray.Direction.Negate().Normalize()),
		bsdf:  isect.BSDF,
	}
}

// EstimateRadiance returns the radiance arriving at the ray origin along
// the ray. The ray's depth is reset to the configured bounce budget.
// Non-finite estimates are returned as black.
func (pt *PathTracer) EstimateRadiance(ray core.Ray, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	if pt.config.ShadeNormals {
		return pt.shadeNormal(ray, stats)
	}

	radiance := pt.EstimateComponents(ray, sampler, stats).Total()
	if !radiance.IsFinite() {
		return core.Vec3{}
	}
	return radiance
}

// shadeNormal maps the face-forwarded normal at the closest hit to a color
// without any lighting work. Misses are black.
func (pt *PathTracer) shadeNormal(ray core.Ray, stats *core.TraversalStats) core.Vec3 {
	var isect geometry.Intersection
	if pt.scene.BVH == nil || !pt.scene.BVH.Intersect(&ray, &isect, stats) {
		return core.Vec3{}
	}
	n := isect.Normal
	if n.Dot(ray.Direction) > 0 {
		n = n.Negate()
	}
	return n.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
}

// EstimateComponents traces a camera ray and returns its radiance estimate
// split into emitted, direct and indirect parts
func (pt *PathTracer) EstimateComponents(ray core.Ray, sampler core.Sampler, stats *core.TraversalStats) Components {
	ray.Depth = pt.config.MaxRayDepth

	var isect geometry.Intersection
	if pt.scene.BVH == nil || !pt.scene.BVH.Intersect(&ray, &isect, stats) {
		var c Components
		if pt.scene.Environment != nil {
			c.Emitted = pt.scene.Environment.SampleDir(ray.Direction)
		}
		return c
	}

	c := Components{Hit: true, T: isect.T}
	if isect.BSDF == nil {
		c.Normal = isect.Normal
		return c
	}

	sp := newShadingPoint(ray, &isect)
	c.Normal = sp.n
	c.Emitted = pt.zeroBounceRadiance(sp)
	if ray.Depth >= 1 {
		c.Direct = pt.oneBounceRadiance(sp, sampler, stats)
	}
	if ray.Depth > 1 {
		c.Indirect = pt.indirectRadiance(ray, sp, sampler, stats)
	}
	return c
}

// zeroBounceRadiance is the light emitted by the surface itself
func (pt *PathTracer) zeroBounceRadiance(sp shadingPoint) core.Vec3 {
	return sp.bsdf.Emission()
}

// oneBounceRadiance is the direct lighting estimate at the hit
func (pt *PathTracer) oneBounceRadiance(sp shadingPoint, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	if pt.config.HemisphereSampling {
		return pt.estimateDirectHemisphere(sp, sampler, stats)
	}
	return pt.estimateDirectImportance(sp, sampler, stats)
}

// atLeastOneBounceRadiance is direct lighting plus, while the bounce budget
// allows, light arriving after further bounces
func (pt *PathTracer) atLeastOneBounceRadiance(ray core.Ray, sp shadingPoint, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	radiance := pt.oneBounceRadiance(sp, sampler, stats)
	if ray.Depth > 1 {
		radiance = radiance.Add(pt.indirectRadiance(ray, sp, sampler, stats))
	}
	return radiance
}

// indirectRadiance samples one bounce direction from the BSDF and gathers
// the at-least-one-bounce radiance of whatever it hits. The caller
// guarantees ray.Depth > 1 so the bounce ray keeps a budget of at least 1.
func (pt *PathTracer) indirectRadiance(ray core.Ray, sp shadingPoint, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	wiLocal, pdf, f := sp.bsdf.Sample(sp.wo, sampler)
	if !pdfIsUsable(pdf) || f.IsZero() {
		return core.Vec3{}
	}

	continuation := 1.0
	bounces := pt.config.MaxRayDepth - ray.Depth
	if bounces >= pt.config.RussianRouletteMinBounces {
		continuation = pt.config.ContinuationProbability
		if sampler.Get1D() >= continuation {
			return core.Vec3{}
		}
	}

	wi := sp.frame.ToWorld(wiLocal)
	next := core.NewRay(sp.p, wi)
	next.MinT = Epsilon
	next.Depth = ray.Depth - 1

	var isect geometry.Intersection
	if !pt.scene.BVH.Intersect(&next, &isect, stats) || isect.BSDF == nil {
		return core.Vec3{}
	}

	nextSP := newShadingPoint(next, &isect)
	incoming := pt.atLeastOneBounceRadiance(next, nextSP, sampler, stats)
	if sp.bsdf.IsDelta() {
		// Direct lighting cannot reach through a delta bounce, so the
		// emission the bounce ray sees is counted here
		incoming = incoming.Add(pt.zeroBounceRadiance(nextSP))
	}

	cos := math.Abs(wiLocal.Z)
	return f.MultiplyVec(incoming).Multiply(cos / (pdf * continuation))
}
