package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Primitive is the capability set shared by every intersectable shape
type Primitive interface {
	// BoundingBox returns a box enclosing the primitive
	BoundingBox() core.AABB

	// HasIntersection reports whether the ray hits the primitive within
	// [ray.MinT, ray.MaxT]. The ray is taken by value and never modified.
	HasIntersection(ray core.Ray) bool

	// Intersect tests the ray within [ray.MinT, ray.MaxT]. On a hit it
	// narrows ray.MaxT to the hit distance and fills isect.
	Intersect(ray *core.Ray, isect *Intersection) bool
}

// Intersection records a ray/primitive hit
type Intersection struct {
	T         float64       // Ray parameter of the hit
	Normal    core.Vec3     // Unit surface normal at the hit
	BSDF      material.BSDF // Surface model at the hit
	Primitive Primitive     // Primitive that was hit
}
