package core

import "math"

// Ray is a half-line with an active search interval [MinT, MaxT].
//
// Intersection tests that take a *Ray narrow MaxT to the closest hit found so
// far, so later tests along the same ray only accept closer hits. Depth is the
// remaining bounce budget of the path this ray belongs to.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
	Depth     int
}

// NewRay creates a ray with the unbounded interval [0, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: 0, MaxT: math.Inf(1)}
}

// NewSegment creates a ray restricted to [minT, maxT]
func NewSegment(origin, direction Vec3, minT, maxT float64) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: minT, MaxT: maxT}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
