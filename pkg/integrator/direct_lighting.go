package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

// estimateDirectHemisphere samples directions uniformly over the hemisphere
// around the normal and adds the emission of whatever each one hits. It
// sees every emitter, registered as a light or not.
func (pt *PathTracer) estimateDirectHemisphere(sp shadingPoint, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	numSamples := max(1, len(pt.scene.Lights)) * pt.config.AreaLightSamples

	var sum core.Vec3
	for i := 0; i < numSamples; i++ {
		wiLocal := core.SampleUniformHemisphere(sampler.Get2D())
		wi := sp.frame.ToWorld(wiLocal)

		ray := core.NewRay(sp.p.Add(wi.Multiply(Epsilon)), wi)
		ray.MinT = Epsilon

		var isect geometry.Intersection
		if !pt.scene.BVH.Intersect(&ray, &isect, stats) || isect.BSDF == nil {
			continue
		}

		emission := isect.BSDF.Emission()
		if emission.IsZero() {
			continue
		}
		f := sp.bsdf.F(sp.wo, wiLocal)
		sum = sum.Add(emission.MultiplyVec(f).Multiply(wiLocal.Z / core.UniformHemispherePDF))
	}
	return sum.Multiply(1.0 / float64(numSamples))
}

// estimateDirectImportance samples each light in turn and adds the
// unoccluded contributions. Area lights are averaged over their samples;
// delta lights contribute their single sample as is.
func (pt *PathTracer) estimateDirectImportance(sp shadingPoint, sampler core.Sampler, stats *core.TraversalStats) core.Vec3 {
	var total core.Vec3
	for _, light := range pt.scene.Lights {
		numSamples := pt.config.AreaLightSamples
		if light.IsDelta() {
			numSamples = 1
		}

		var sum core.Vec3
		for i := 0; i < numSamples; i++ {
			ls := light.SampleL(sp.p, sampler)
			if !pdfIsUsable(ls.PDF) {
				continue
			}
			cos := ls.Direction.Dot(sp.n)
			if cos < 0 {
				continue
			}

			// Distance is +Inf for directional lights, which leaves the shadow
			// ray unbounded
			shadow := core.NewSegment(sp.p, ls.Direction, Epsilon, ls.Distance-Epsilon)
			if pt.scene.BVH.HasIntersection(shadow, stats) {
				continue
			}

			f := sp.bsdf.F(sp.wo, sp.frame.ToLocal(ls.Direction))
			sum = sum.Add(ls.Radiance.MultiplyVec(f).Multiply(cos / ls.PDF))
		}

		if light.IsDelta() {
			total = total.Add(sum)
		} else {
			total = total.Add(sum.Multiply(1.0 / float64(numSamples)))
		}
	}
	return total
}

// pdfIsUsable reports whether a sampled density can be divided by
func pdfIsUsable(pdf float64) bool {
	return pdf > 0 && !math.IsInf(pdf, 0) && !math.IsNaN(pdf)
}
