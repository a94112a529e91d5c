package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 20

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored spheres on a ground quad under
// a sky gradient and a directional sun. Its primitive count makes it a BVH
// stress test.
func NewSphereGridScene() *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),    // Farther back and slightly raised
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02, // Small depth of field for some focus variation
	})
	s.Environment = lights.NewGradientEnvironment(
		core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		core.NewVec3(1.0, 1.0, 1.0), // White horizon
	)
	s.AddDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(2.5, 2.4, 2.2))

	// Large finite ground quad centered under the grid, normal +Y
	groundSize := 200.0
	s.AddQuad(
		core.NewVec3(4.5-groundSize/2, 0, 4.5-groundSize/2),
		core.NewVec3(0, 0, groundSize),
		core.NewVec3(groundSize, 0, 0),
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)),
	)

	// Fit the grid into roughly 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z) // Sphere sits on the ground

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(sphereGridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(sphereGridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			// Every seventh sphere is a mirror
			var bsdf material.BSDF = material.NewDiffuse(color)
			if (i*sphereGridSize+j)%7 == 0 {
				bsdf = material.NewMirror(color)
			}
			s.AddSphere(position, sphereRadius, bsdf)
		}
	}

	return s
}
