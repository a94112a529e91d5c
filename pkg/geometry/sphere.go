package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Sphere represents a sphere shape that owns its parameters and BSDF
type Sphere struct {
	Center core.Vec3
	Radius float64
	BSDF   material.BSDF
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, bsdf material.BSDF) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		BSDF:   bsdf,
	}
}

// Roots solves |o + t*d - c|² = r² and returns both real roots with
// tLo <= tHi. Tangent rays (zero discriminant), zero directions and
// non-positive radii report no roots.
func (s *Sphere) Roots(ray core.Ray) (tLo, tHi float64, ok bool) {
	if s.Radius <= 0 {
		return 0, 0, false
	}

	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, 0, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// test returns the hit distance inside the ray interval. The smaller root
// wins when it is in range; otherwise the larger root is a hit from inside.
func (s *Sphere) test(ray core.Ray) (float64, bool) {
	tLo, tHi, ok := s.Roots(ray)
	if !ok {
		return 0, false
	}
	if tLo >= ray.MinT && tLo <= ray.MaxT {
		return tLo, true
	}
	if tHi >= ray.MinT && tHi <= ray.MaxT {
		return tHi, true
	}
	return 0, false
}

// HasIntersection reports whether the ray hits the sphere within its interval
func (s *Sphere) HasIntersection(ray core.Ray) bool {
	_, hit := s.test(ray)
	return hit
}

// Intersect tests the ray against the sphere, narrowing ray.MaxT on a hit
func (s *Sphere) Intersect(ray *core.Ray, isect *Intersection) bool {
	t, hit := s.test(*ray)
	if !hit {
		return false
	}

	ray.MaxT = t
	isect.T = t
	isect.Normal = ray.At(t).Subtract(s.Center).Multiply(1.0 / s.Radius)
	isect.BSDF = s.BSDF
	isect.Primitive = s
	return true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
