package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestDiffuse_FAndSample(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	d := NewDiffuse(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))
	wo := core.NewVec3(0, 0, 1)

	want := albedo.Multiply(1.0 / math.Pi)
	if got := d.F(wo, core.NewVec3(0, 0.6, 0.8)); got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected F=%v, got %v", want, got)
	}
	if got := d.F(wo, core.NewVec3(0, 0.6, -0.8)); !got.IsZero() {
		t.Errorf("Expected zero F below the surface, got %v", got)
	}

	// f*cos/pdf is the albedo for cosine-weighted sampling
	for i := 0; i < 100; i++ {
		wi, pdf, f := d.Sample(wo, sampler)
		if pdf <= 0 {
			continue
		}
		weight := f.Multiply(wi.Z / pdf)
		if weight.Subtract(albedo).Length() > 1e-9 {
			t.Fatalf("Expected sample weight %v, got %v", albedo, weight)
		}
	}
}

func TestMirror_SampleReflects(t *testing.T) {
	m := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	wo := core.NewVec3(0.6, 0, 0.8)

	wi, pdf, f := m.Sample(wo, sampler)
	if wi.Subtract(core.NewVec3(-0.6, 0, 0.8)).Length() > 1e-12 {
		t.Errorf("Expected mirrored direction, got %v", wi)
	}
	weight := f.Multiply(wi.Z / pdf)
	if weight.Subtract(m.Reflectance).Length() > 1e-12 {
		t.Errorf("Expected weight equal to reflectance, got %v", weight)
	}
	if !m.IsDelta() {
		t.Error("Mirror should be a delta BSDF")
	}
	if !m.F(wo, wi).IsZero() {
		t.Error("Mirror F should be zero when evaluated directly")
	}
}

func TestEmissive(t *testing.T) {
	e := NewEmissive(core.NewVec3(4, 4, 4))
	if e.Emission() != core.NewVec3(4, 4, 4) {
		t.Errorf("Unexpected emission %v", e.Emission())
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	if _, _, f := e.Sample(core.NewVec3(0, 0, 1), sampler); !f.IsZero() {
		t.Errorf("Emitters should not scatter, got %v", f)
	}
}
