package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellBoxSize = 555.0

// newCornellBox creates the five walls of a Cornell box without lights or
// contents
func newCornellBox() *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
	})

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	size := cornellBoxSize
	x := core.NewVec3(size, 0, 0)
	y := core.NewVec3(0, size, 0)
	z := core.NewVec3(0, 0, size)

	s.AddQuad(core.NewVec3(0, 0, 0), z, x, white)    // Floor, normal +Y
	s.AddQuad(core.NewVec3(0, size, 0), x, z, white) // Ceiling, normal -Y
	s.AddQuad(core.NewVec3(0, 0, size), y, x, white) // Back wall, normal -Z
	s.AddQuad(core.NewVec3(0, 0, 0), y, z, red)      // Left wall at x=0, normal +X
	s.AddQuad(core.NewVec3(size, 0, 0), z, y, green) // Right wall at x=size, normal -X
	return s
}

// addCeilingLight adds the standard 130x130 area light just below the ceiling
func addCeilingLight(s *Scene) {
	lightSize := 130.0
	lightOffset := (cornellBoxSize - lightSize) / 2.0
	s.AddAreaLight(
		core.NewVec3(lightOffset, cornellBoxSize-1, lightOffset), // Slightly below ceiling
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize), // u × v points down into the box
		core.NewVec3(15.0, 15.0, 15.0),
	)
}

// NewCornellScene creates a classic Cornell box with a ceiling area light
// and two diffuse spheres
func NewCornellScene() *Scene {
	s := newCornellBox()
	addCeilingLight(s)
	s.AddSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	s.AddSphere(core.NewVec3(370, 90, 351), 90, material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.7)))
	return s
}

// NewCornellMirrorScene replaces the left sphere with a perfect mirror
func NewCornellMirrorScene() *Scene {
	s := newCornellBox()
	addCeilingLight(s)
	s.AddSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)))
	s.AddSphere(core.NewVec3(370, 90, 351), 90, material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	return s
}

// NewCornellPointScene lights the box with a single point light below the
// ceiling instead of the area light
func NewCornellPointScene() *Scene {
	s := newCornellBox()
	s.AddPointLight(core.NewVec3(278, 500, 278), core.NewVec3(400000, 400000, 400000))
	s.AddSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	s.AddSphere(core.NewVec3(370, 90, 351), 90, material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)))
	return s
}
