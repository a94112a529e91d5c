package core

import (
	"math"
	"testing"
)

func TestAABB_Intersect(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name    string
		ray     Ray
		t0, t1  float64
		wantHit bool
		wantT0  float64
		wantT1  float64
	}{
		{"straight through", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), true, 4, 6},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), 0, math.Inf(1), false, 0, 0},
		{"parallel outside slab", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), false, 0, 0},
		{"parallel inside slab", NewRay(NewVec3(-5, 0.5, 0.5), NewVec3(1, 0, 0)), 0, math.Inf(1), true, 4, 6},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)), 0, math.Inf(1), true, 0, 1},
		{"interval ends before box", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, 3, false, 0, 0},
		{"interval starts after box", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 7, 10, false, 0, 0},
		{"interval inside box span", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 4.5, 5.5, true, 4.5, 5.5},
		{"unnormalized direction", NewRay(NewVec3(-5, 0, 0), NewVec3(2, 0, 0)), 0, math.Inf(1), true, 2, 3},
		{"diagonal", NewRay(NewVec3(-3, -3, -3), NewVec3(1, 1, 1)), 0, math.Inf(1), true, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1 := tt.t0, tt.t1
			hit := box.Intersect(tt.ray, &t0, &t1)
			if hit != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, hit)
			}
			if !hit {
				return
			}
			if math.Abs(t0-tt.wantT0) > 1e-9 || math.Abs(t1-tt.wantT1) > 1e-9 {
				t.Errorf("Expected interval [%f, %f], got [%f, %f]", tt.wantT0, tt.wantT1, t0, t1)
			}
		})
	}
}

func TestAABB_IntersectInvertedInterval(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	rays := []Ray{
		NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)),
		NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)),
		NewRay(NewVec3(3, 3, 3), NewVec3(-1, -1, -1)),
	}
	for i, ray := range rays {
		t0, t1 := 5.0, 1.0
		if box.Intersect(ray, &t0, &t1) {
			t.Errorf("ray %d: expected miss for inverted interval", i)
		}
		if t0 != 5.0 || t1 != 1.0 {
			t.Errorf("ray %d: interval should be untouched on a miss, got [%f, %f]", i, t0, t1)
		}
	}
}

func TestAABB_EmptyBoxNeverHits(t *testing.T) {
	ray := NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0))

	empty := EmptyAABB()
	t0, t1 := 0.0, math.Inf(1)
	if empty.Intersect(ray, &t0, &t1) {
		t.Error("Expected EmptyAABB to never intersect")
	}

	inverted := NewAABB(NewVec3(1, -1, -1), NewVec3(0, 1, 1))
	t0, t1 = 0.0, math.Inf(1)
	if inverted.Intersect(ray, &t0, &t1) {
		t.Error("Expected box with min > max to never intersect")
	}
}

func TestAABB_OriginOnSlabPlane(t *testing.T) {
	// Origin lies exactly on the y = 1 plane with zero y direction
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0))
	t0, t1 := 0.0, math.Inf(1)
	if !box.Intersect(ray, &t0, &t1) {
		t.Fatal("Expected grazing ray on the slab plane to hit")
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		t.Errorf("Expected finite interval, got [%f, %f]", t0, t1)
	}
}

func TestAABB_Expand(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))

	got := a.Expand(b)
	want := NewAABB(NewVec3(-1, 0, 0), NewVec3(1, 3, 4))
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if EmptyAABB().Expand(a) != a {
		t.Error("Expanding the empty box should yield the other box")
	}
	if !EmptyAABB().IsEmpty() {
		t.Error("EmptyAABB should be empty")
	}
	if NewAABBFromPoints(NewVec3(1, 2, 3)).IsEmpty() {
		t.Error("A single point box should not be empty")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		box  AABB
		want int
	}{
		{NewAABB(NewVec3(0, 0, 0), NewVec3(3, 1, 1)), 0},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 3, 1)), 1},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 3)), 2},
	}
	for _, tt := range tests {
		if got := tt.box.LongestAxis(); got != tt.want {
			t.Errorf("LongestAxis(%v) = %d, want %d", tt.box, got, tt.want)
		}
	}
}
