package core

import "math"

// Frame is an orthonormal shading basis whose Z axis is the surface normal.
// BSDFs work in this local space: cos(theta) of a direction is its Z value.
type Frame struct {
	T, B, N Vec3
}

// NewFrame builds a frame around a unit normal
func NewFrame(normal Vec3) Frame {
	// Find a vector not parallel to the normal
	var helper Vec3
	if math.Abs(normal.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}

	tangent := helper.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)
	return Frame{T: tangent, B: bitangent, N: normal}
}

// ToLocal expresses a world-space vector in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return NewVec3(v.Dot(f.T), v.Dot(f.B), v.Dot(f.N))
}

// ToWorld expresses a frame-local vector in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.T.Multiply(v.X).Add(f.B.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}
