package renderer

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestToneMap_Map(t *testing.T) {
	tm := DefaultToneMap()

	if got := tm.Map(core.Vec3{}, 0.18); !got.IsZero() {
		t.Errorf("Black should stay black, got %v", got)
	}

	// A pixel at the log-average maps to the key before gamma
	grey := core.NewVec3(0.5, 0.5, 0.5)
	got := tm.Map(grey, grey.Luminance())
	scaled := tm.Key
	want := math.Pow(scaled*(1+scaled/(tm.White*tm.White))/(1+scaled), 1/tm.Gamma)
	if math.Abs(got.X-want) > 1e-9 || got.X != got.Y || got.Y != got.Z {
		t.Errorf("Expected grey %f, got %v", want, got)
	}

	// Brighter input never maps darker
	prev := 0.0
	for _, v := range []float64{0.01, 0.1, 1, 10, 100} {
		out := tm.Map(core.NewVec3(v, v, v), 0.18).X
		if out < prev || out > 1 {
			t.Fatalf("Tone map not monotonic in [0,1] at %f: %f", v, out)
		}
		prev = out
	}
}

func TestToneMap_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ToneMap)
		wantErr bool
	}{
		{"default", func(tm *ToneMap) {}, false},
		{"zero gamma", func(tm *ToneMap) { tm.Gamma = 0 }, true},
		{"negative level", func(tm *ToneMap) { tm.Level = -1 }, true},
		{"zero key", func(tm *ToneMap) { tm.Key = 0 }, true},
		{"zero white", func(tm *ToneMap) { tm.White = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := DefaultToneMap()
			tt.mutate(&tm)
			err := tm.Validate()
			if (err != nil) != tt.wantErr || (err != nil && !errors.Is(err, ErrInvalidToneMap)) {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSampleBuffer_ToImage(t *testing.T) {
	b := NewSampleBuffer(3, 2)
	b.Set(0, 0, core.NewVec3(1, 1, 1))
	b.Set(2, 1, core.NewVec3(4, 0, 0))

	img := b.ToImage(DefaultToneMap())
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}
	if img.RGBAAt(1, 0) != (color.RGBA{A: 255}) {
		t.Errorf("Black pixel should map to opaque black, got %v", img.RGBAAt(1, 0))
	}
	if c := img.RGBAAt(2, 1); c.R == 0 || c.G != 0 || c.B != 0 {
		t.Errorf("Red pixel should stay red, got %v", c)
	}
}

func TestSampleCountBuffer_RateImage(t *testing.T) {
	b := NewSampleCountBuffer(3, 1)
	b.Set(0, 0, 0)
	b.Set(1, 0, 8)
	b.Set(2, 0, 16)

	img := b.RateImage(16)
	tests := []struct {
		x    int
		want color.RGBA
	}{
		{0, color.RGBA{B: 255, A: 255}},
		{1, color.RGBA{G: 255, A: 255}},
		{2, color.RGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("Pixel %d: expected %v, got %v", tt.x, tt.want, got)
		}
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SamplingConfig)
		wantErr bool
	}{
		{"default", func(c *SamplingConfig) {}, false},
		{"batch disabled", func(c *SamplingConfig) { c.SamplesPerBatch = 0 }, false},
		{"zero samples", func(c *SamplingConfig) { c.SamplesPerPixel = 0 }, true},
		{"negative tolerance", func(c *SamplingConfig) { c.MaxTolerance = -0.1 }, true},
		{"zero tile", func(c *SamplingConfig) { c.TileSize = 0 }, true},
		{"negative workers", func(c *SamplingConfig) { c.NumWorkers = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultSamplingConfig()
			tt.mutate(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr || (err != nil && !errors.Is(err, ErrInvalidConfig)) {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
