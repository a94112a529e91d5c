package core

import "math"

// AABB represents an axis-aligned bounding box. A box with Min > Max on any
// axis is empty.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the identity box for Expand: it contains nothing and
// expanding it by any box yields that box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.ExpandPoint(p)
	}
	return box
}

// IsEmpty reports whether the box is degenerate (Min > Max on some axis)
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Expand returns the smallest box containing both boxes
func (aabb AABB) Expand(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// ExpandPoint returns the smallest box containing the box and the point
func (aabb AABB) ExpandPoint(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Extent returns the size of the AABB along each axis
func (aabb AABB) Extent() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB, zero when empty
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	e := aabb.Extent()
	return 2.0 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	e := aabb.Extent()
	if e.X > e.Y && e.X > e.Z {
		return 0
	}
	if e.Y > e.Z {
		return 1
	}
	return 2
}

// Intersect performs the slab test of the ray against the box within the
// interval [*t0, *t1]. On a hit the interval is narrowed to the overlap of the
// box and the original interval.
//
// A zero direction component yields infinite slab bounds through the
// reciprocal, which leaves that axis unconstrained when the origin is inside
// the slab and empties the interval otherwise. An origin lying exactly on a
// slab plane produces NaN bounds; NaN never wins a comparison below, so the
// axis is treated as unconstrained.
func (aabb AABB) Intersect(ray Ray, t0, t1 *float64) bool {
	if *t0 > *t1 || aabb.IsEmpty() {
		return false
	}

	tNear, tFar := *t0, *t1
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		tA := (aabb.Min.Axis(axis) - origin) * invD
		tB := (aabb.Max.Axis(axis) - origin) * invD
		if tA > tB {
			tA, tB = tB, tA
		}
		if tA > tNear {
			tNear = tA
		}
		if tB < tFar {
			tFar = tB
		}
		if tNear > tFar {
			return false
		}
	}

	*t0, *t1 = tNear, tFar
	return true
}
