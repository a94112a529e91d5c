package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestPointLight_SampleL(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewVec3(16, 16, 16))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	ls := light.SampleL(core.NewVec3(0, 0, 0), sampler)

	if !light.IsDelta() {
		t.Error("Point light should be a delta light")
	}
	if ls.PDF != 1 {
		t.Errorf("Expected pdf 1, got %f", ls.PDF)
	}
	if ls.Distance != 4 {
		t.Errorf("Expected distance 4, got %f", ls.Distance)
	}
	if ls.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction +Y, got %v", ls.Direction)
	}
	if math.Abs(ls.Radiance.X-1.0) > 1e-12 {
		t.Errorf("Expected inverse-square falloff to 1, got %v", ls.Radiance)
	}
}

func TestDirectionalLight_SampleL(t *testing.T) {
	light := NewDirectionalLight(core.NewVec3(0, -2, 0), core.NewVec3(3, 3, 3))
	ls := light.SampleL(core.NewVec3(5, 5, 5), nil)

	if ls.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction toward the light (+Y), got %v", ls.Direction)
	}
	if !math.IsInf(ls.Distance, 1) || ls.PDF != 1 || ls.Radiance.X != 3 {
		t.Errorf("Unexpected sample %+v", ls)
	}
}

func TestAreaLight_SampleL(t *testing.T) {
	// 2x2 light at y=2 facing down
	light := NewAreaLight(
		core.NewVec3(-1, 2, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(5, 5, 5),
	)
	if light.Normal != core.NewVec3(0, -1, 0) {
		t.Fatalf("Expected downward normal, got %v", light.Normal)
	}
	if light.IsDelta() {
		t.Error("Area light should not be a delta light")
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	tests := []struct {
		name      string
		point     core.Vec3
		wantLight bool
	}{
		{"below, front side", core.NewVec3(0, 0, 0), true},
		{"above, back side", core.NewVec3(0, 4, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				ls := light.SampleL(tt.point, sampler)
				if !tt.wantLight {
					if ls.PDF != 0 || !ls.Radiance.IsZero() {
						t.Fatalf("Back side should receive nothing, got %+v", ls)
					}
					continue
				}

				hit := tt.point.Add(ls.Direction.Multiply(ls.Distance))
				if math.Abs(hit.Y-2) > 1e-9 || math.Abs(hit.X) > 1+1e-9 || math.Abs(hit.Z) > 1+1e-9 {
					t.Fatalf("Sampled point %v is not on the light", hit)
				}
				cosLight := -ls.Direction.Dot(light.Normal)
				wantPDF := ls.Distance * ls.Distance / (light.Area * cosLight)
				if math.Abs(ls.PDF-wantPDF) > 1e-9 {
					t.Fatalf("Expected pdf %f, got %f", wantPDF, ls.PDF)
				}
			}
		})
	}
}

func TestAreaLight_SolidAngleEstimate(t *testing.T) {
	// The average of 1/pdf estimates the solid angle subtended by the light.
	// A small light far away subtends about area/d².
	light := NewAreaLight(core.NewVec3(-0.05, 10, -0.05), core.NewVec3(0.1, 0, 0), core.NewVec3(0, 0, 0.1), core.NewVec3(1, 1, 1))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(5)))

	sum := 0.0
	const n = 1000
	for i := 0; i < n; i++ {
		sum += 1.0 / light.SampleL(core.NewVec3(0, 0, 0), sampler).PDF
	}
	want := light.Area / 100
	if math.Abs(sum/n-want)/want > 1e-3 {
		t.Errorf("Expected solid angle ~%g, got %g", want, sum/n)
	}
}

func TestAreaLight_Mesh(t *testing.T) {
	light := NewAreaLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(2, 2, 2))
	mesh := light.Mesh()
	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.BSDF.Emission() != light.Radiance {
		t.Errorf("Expected mesh emission %v, got %v", light.Radiance, mesh.BSDF.Emission())
	}
}

func TestEnvironments(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	gradient := NewGradientEnvironment(top, bottom)

	tests := []struct {
		name string
		env  Environment
		dir  core.Vec3
		want core.Vec3
	}{
		{"uniform", NewUniformEnvironment(core.NewVec3(0.2, 0.2, 0.2)), core.NewVec3(1, 2, 3), core.NewVec3(0.2, 0.2, 0.2)},
		{"gradient up", gradient, core.NewVec3(0, 3, 0), top},
		{"gradient down", gradient, core.NewVec3(0, -1, 0), bottom},
		{"gradient horizon", gradient, core.NewVec3(1, 0, 0), top.Add(bottom).Multiply(0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.env.SampleDir(tt.dir)
			if got.Subtract(tt.want).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
