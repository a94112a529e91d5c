package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func TestSphere_Intersect(t *testing.T) {
	bsdf := material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, bsdf)

	tests := []struct {
		name       string
		ray        core.Ray
		wantHit    bool
		wantT      float64
		wantNormal core.Vec3
	}{
		{"front hit", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), true, 4, core.NewVec3(0, 0, 1)},
		{"unnormalized direction", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -2)), true, 2, core.NewVec3(0, 0, 1)},
		{"hit from inside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), true, 1, core.NewVec3(1, 0, 0)},
		{"miss", core.NewRay(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1)), false, 0, core.Vec3{}},
		{"behind origin", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), false, 0, core.Vec3{}},
		{"tangent", core.NewRay(core.NewVec3(-5, 1, 0), core.NewVec3(1, 0, 0)), false, 0, core.Vec3{}},
		{"interval too short", core.NewSegment(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 0, 3), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			var isect Intersection

			if got := sphere.HasIntersection(ray); got != tt.wantHit {
				t.Errorf("HasIntersection = %v, want %v", got, tt.wantHit)
			}
			if ray != tt.ray {
				t.Error("HasIntersection must not modify the ray")
			}

			hit := sphere.Intersect(&ray, &isect)
			if hit != tt.wantHit {
				t.Fatalf("Intersect = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				if ray.MaxT != tt.ray.MaxT {
					t.Errorf("A miss must not narrow MaxT, got %f", ray.MaxT)
				}
				return
			}
			if math.Abs(isect.T-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.wantT, isect.T)
			}
			if ray.MaxT != isect.T {
				t.Errorf("Expected MaxT narrowed to %f, got %f", isect.T, ray.MaxT)
			}
			if isect.Normal.Subtract(tt.wantNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.wantNormal, isect.Normal)
			}
			if isect.BSDF != bsdf || isect.Primitive != sphere {
				t.Error("Intersection should reference the sphere and its BSDF")
			}
		})
	}
}

func TestSphere_RootsSymmetricThroughCenter(t *testing.T) {
	center := core.NewVec3(1, 2, -3)
	sphere := NewSphere(center, 2.0, nil)
	origin := core.NewVec3(-4, 0, 2)
	ray := core.NewRay(origin, center.Subtract(origin))

	tLo, tHi, ok := sphere.Roots(ray)
	if !ok {
		t.Fatal("Expected two real roots for a ray through the center")
	}
	// The center projects to t = 1 for a direction of (center - origin)
	if math.Abs((tLo+tHi)/2-1.0) > 1e-9 {
		t.Errorf("Expected roots symmetric about t=1, got %f and %f", tLo, tHi)
	}
	if tLo >= tHi {
		t.Errorf("Expected tLo < tHi, got %f, %f", tLo, tHi)
	}
}

func TestSphere_Degenerate(t *testing.T) {
	zero := NewSphere(core.NewVec3(0, 0, 0), 0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	var isect Intersection
	if zero.HasIntersection(ray) || zero.Intersect(&ray, &isect) {
		t.Error("A zero-radius sphere should never intersect")
	}
}
