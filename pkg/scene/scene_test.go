package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

func TestLookup_AllRegisteredScenes(t *testing.T) {
	names := Names()
	if len(names) < 6 {
		t.Fatalf("Expected at least 6 built-in scenes, got %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", name, err)
			}
			if s.Camera == nil {
				t.Fatal("Scene should have a camera")
			}
			if s.BVH != nil {
				t.Error("BVH should not exist before Build")
			}
			s.Build(geometry.DefaultBVHOptions())
			if s.BVH == nil {
				t.Fatal("Build should create the BVH")
			}
			if got := s.BVH.Stats().Primitives; got != s.PrimitiveCount() {
				t.Errorf("BVH holds %d primitives, scene has %d", got, s.PrimitiveCount())
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("no-such-scene")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestLookup_ReturnsFreshScenes(t *testing.T) {
	a, _ := Lookup("cornell")
	b, _ := Lookup("cornell")
	a.AddSphere(core.NewVec3(0, 0, 0), 1, nil)
	if a.PrimitiveCount() == b.PrimitiveCount() {
		t.Error("Scenes returned by Lookup should not share state")
	}
}

func TestCornellScene_Contents(t *testing.T) {
	s := NewCornellScene()

	// 5 walls and the light quad are two triangles each, plus two spheres
	if want := 6*2 + 2; s.PrimitiveCount() != want {
		t.Errorf("Expected %d primitives, got %d", want, s.PrimitiveCount())
	}
	if len(s.Lights) != 1 || s.Lights[0].IsDelta() {
		t.Errorf("Expected one area light, got %d lights", len(s.Lights))
	}
	if s.Environment != nil {
		t.Error("Cornell box should have no environment")
	}
}

func TestEmptyScene(t *testing.T) {
	s := NewEmptyScene()
	s.Build(geometry.DefaultBVHOptions())
	if !s.BVH.Empty() || len(s.Lights) != 0 {
		t.Error("Empty scene should have no geometry or lights")
	}
	if s.Environment == nil {
		t.Error("Empty scene should have a sky environment")
	}
}

func TestSetAspectRatio_KeepsFocus(t *testing.T) {
	s := NewSingleSphereScene()
	s.Camera.SetFocusDistance(2.5)
	s.SetAspectRatio(2.0)
	if s.CameraConfig.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio 2, got %f", s.CameraConfig.AspectRatio)
	}
	if s.Camera.FocusDistance() != 2.5 {
		t.Errorf("Expected focus distance 2.5 to survive, got %f", s.Camera.FocusDistance())
	}
}
