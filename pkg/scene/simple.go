package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// SingleSphereCameraDistance is the distance from the single-sphere camera
// to the sphere center
const SingleSphereCameraDistance = 5.0

// NewSingleSphereScene creates a unit diffuse sphere at the origin lit by a
// point light, viewed head-on from +Z
func NewSingleSphereScene() *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, SingleSphereCameraDistance),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30.0,
		AspectRatio: 1.0,
	})

	s.AddSphere(core.NewVec3(0, 0, 0), 1.0, material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7)))
	s.AddPointLight(core.NewVec3(2, 4, 4), core.NewVec3(30, 30, 30))
	return s
}

// NewEmptyScene creates a scene without geometry or lights. Every camera ray
// escapes and sees the sky gradient.
func NewEmptyScene() *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		AspectRatio: 16.0 / 9.0,
	})
	s.Environment = lights.NewGradientEnvironment(
		core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		core.NewVec3(1.0, 1.0, 1.0), // White horizon
	)
	return s
}
