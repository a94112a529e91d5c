package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Primitives   []geometry.Primitive // Objects in the scene
	Lights       []lights.Light       // Lights queried for direct lighting
	Environment  lights.Environment   // Radiance for escaping rays; nil is black
	BVH          *geometry.BVH        // Acceleration structure, set by Build
}

// NewScene creates an empty scene viewed through the given camera
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Primitives:   make([]geometry.Primitive, 0),
		Lights:       make([]lights.Light, 0),
	}
}

// Build constructs the BVH over the scene's primitives. It must be called
// after the last primitive is added and before rendering.
func (s *Scene) Build(opts geometry.BVHOptions) {
	s.BVH = geometry.NewBVH(s.Primitives, opts)
}

// SetAspectRatio rebuilds the camera for a new frame shape, keeping its
// current focus distance
func (s *Scene) SetAspectRatio(aspect float64) {
	focus := s.Camera.FocusDistance()
	s.CameraConfig.AspectRatio = aspect
	s.Camera = geometry.NewCamera(s.CameraConfig)
	s.Camera.SetFocusDistance(focus)
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, bsdf material.BSDF) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, bsdf)
	s.Primitives = append(s.Primitives, sphere)
	return sphere
}

// AddMesh adds every triangle of the mesh to the scene
func (s *Scene) AddMesh(mesh *geometry.Mesh) {
	s.Primitives = append(s.Primitives, mesh.Triangles()...)
}

// AddQuad adds a two-triangle parallelogram spanned by u and v at corner
func (s *Scene) AddQuad(corner, u, v core.Vec3, bsdf material.BSDF) {
	s.AddMesh(geometry.NewQuadMesh(corner, u, v, bsdf))
}

// AddAreaLight adds a rectangular area light and its emissive geometry
func (s *Scene) AddAreaLight(corner, u, v, radiance core.Vec3) *lights.AreaLight {
	light := lights.NewAreaLight(corner, u, v, radiance)
	s.Lights = append(s.Lights, light)
	s.AddMesh(light.Mesh())
	return light
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	s.Lights = append(s.Lights, light)
	return light
}

// AddDirectionalLight adds a light shining along direction
func (s *Scene) AddDirectionalLight(direction, radiance core.Vec3) *lights.DirectionalLight {
	light := lights.NewDirectionalLight(direction, radiance)
	s.Lights = append(s.Lights, light)
	return light
}
