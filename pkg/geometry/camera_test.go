package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestCamera_GenerateRay(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}
	camera := NewCamera(config)

	tests := []struct {
		name string
		s, t float64
		want core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1).Normalize()},
		{"left edge", 0, 0.5, core.NewVec3(-2, 0, -1).Normalize()},
		{"bottom right", 1, 0, core.NewVec3(2, -1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GenerateRay(tt.s, tt.t, nil)
			if ray.Origin != config.Center {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.want, ray.Direction)
			}
			if ray.MinT != 0 || !math.IsInf(ray.MaxT, 1) {
				t.Errorf("Expected unbounded interval, got [%f, %f]", ray.MinT, ray.MaxT)
			}
		})
	}
}

func TestCamera_ThinLensFocus(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   1.0,
		Aperture:      0.5,
		FocusDistance: 3.0,
	}
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	focus := core.NewVec3(0, 0, 2)

	// Every lens sample through the image center converges on the focus plane
	for i := 0; i < 50; i++ {
		ray := camera.GenerateRay(0.5, 0.5, sampler)
		tFocus := (focus.Z - ray.Origin.Z) / ray.Direction.Z
		p := ray.At(tFocus)
		if p.Subtract(focus).Length() > 1e-9 {
			t.Fatalf("Ray %d misses focus point: %v", i, p)
		}
	}

	camera.SetFocusDistance(-1)
	if camera.FocusDistance() != 3.0 {
		t.Errorf("Non-positive focus distance should be ignored, got %f", camera.FocusDistance())
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 3, 4),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	})
	if camera.FocusDistance() != 5 {
		t.Errorf("Expected focus distance 5, got %f", camera.FocusDistance())
	}
	if camera.Forward().Subtract(core.NewVec3(0, -0.6, -0.8)).Length() > 1e-9 {
		t.Errorf("Unexpected forward %v", camera.Forward())
	}
}
