package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the focus plane; 0 uses |LookAt - Center|
}

// Camera generates primary rays for normalized image-plane coordinates
type Camera struct {
	config     CameraConfig
	u, v, w    core.Vec3 // Right, up and backward basis vectors
	halfWidth  float64   // Viewport half extents at unit distance
	halfHeight float64
	lensRadius float64
	focusDist  float64
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)

	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = config.Center.Subtract(config.LookAt).Length()
	}

	return &Camera{
		config:     config,
		u:          u,
		v:          v,
		w:          w,
		halfWidth:  config.AspectRatio * halfHeight,
		halfHeight: halfHeight,
		lensRadius: config.Aperture / 2,
		focusDist:  focusDist,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// FocusDistance returns the current distance to the focus plane
func (c *Camera) FocusDistance() float64 {
	return c.focusDist
}

// SetFocusDistance moves the focus plane. Non-positive values are ignored.
func (c *Camera) SetFocusDistance(d float64) {
	if d > 0 {
		c.focusDist = d
	}
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// GenerateRay returns a unit-direction ray through (s, t) in [0,1]², with
// (0,0) at the bottom-left of the image. With a non-zero aperture the origin
// is jittered on the lens and the ray aims at the focus plane.
func (c *Camera) GenerateRay(s, t float64, sampler core.Sampler) core.Ray {
	// Point on the focus plane in camera space
	x := (2*s - 1) * c.halfWidth * c.focusDist
	y := (2*t - 1) * c.halfHeight * c.focusDist
	target := c.config.Center.
		Add(c.u.Multiply(x)).
		Add(c.v.Multiply(y)).
		Subtract(c.w.Multiply(c.focusDist))

	origin := c.config.Center
	if c.lensRadius > 0 && sampler != nil {
		lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	return core.NewRay(origin, target.Subtract(origin).Normalize())
}
