package lights

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// AreaLight is a one-sided emitting parallelogram spanned by U and V at
// Corner. It emits on the side of U × V.
type AreaLight struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Normal   core.Vec3 // Unit normal of the emitting side
	Area     float64   // Cached |U × V|
	Radiance core.Vec3
}

// NewAreaLight creates a new quad area light
func NewAreaLight(corner, u, v, radiance core.Vec3) *AreaLight {
	n := u.Cross(v)
	return &AreaLight{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   n.Normalize(),
		Area:     n.Length(),
		Radiance: radiance,
	}
}

// IsDelta implements the Light interface
func (al *AreaLight) IsDelta() bool {
	return false
}

// SampleL implements the Light interface. A point is chosen uniformly on
// the quad and its area density converted to solid angle:
// pdf = distance² / (area · cos θ_light).
func (al *AreaLight) SampleL(p core.Vec3, sampler core.Sampler) LightSample {
	if al.Area == 0 {
		return LightSample{}
	}

	sample := sampler.Get2D()
	point := al.Corner.Add(al.U.Multiply(sample.X)).Add(al.V.Multiply(sample.Y))

	toLight := point.Subtract(p)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	// Back side of the light, or edge-on: nothing arrives
	cosLight := -direction.Dot(al.Normal)
	if cosLight <= 1e-8 {
		return LightSample{Direction: direction, Distance: distance}
	}

	return LightSample{
		Radiance:  al.Radiance,
		Direction: direction,
		Distance:  distance,
		PDF:       distance * distance / (al.Area * cosLight),
	}
}

// Mesh returns emissive geometry matching the light so camera and bounce
// rays see it
func (al *AreaLight) Mesh() *geometry.Mesh {
	return geometry.NewQuadMesh(al.Corner, al.U, al.V, material.NewEmissive(al.Radiance))
}
