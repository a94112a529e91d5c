package renderer

import (
	"context"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// confidenceZ is the normal quantile of a 95% confidence interval
const confidenceZ = 1.96

// TileRenderer renders pixels into shared buffers. Tiles cover disjoint
// pixels, so concurrent RenderTile calls on different tiles are safe.
type TileRenderer struct {
	scene   *scene.Scene
	tracer  *integrator.PathTracer
	config  SamplingConfig
	samples *SampleBuffer
	counts  *SampleCountBuffer
}

// NewTileRenderer creates a tile renderer writing into the given buffers
func NewTileRenderer(s *scene.Scene, tracer *integrator.PathTracer, config SamplingConfig, samples *SampleBuffer, counts *SampleCountBuffer) *TileRenderer {
	return &TileRenderer{
		scene:   s,
		tracer:  tracer,
		config:  config,
		samples: samples,
		counts:  counts,
	}
}

// RenderTile renders every pixel of the tile, checking for cancellation
// between rows
func (tr *TileRenderer) RenderTile(ctx context.Context, tile Tile, sampler core.Sampler, stats *core.TraversalStats) (RenderStats, error) {
	result := newRenderStats(tr.config.SamplesPerPixel)
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			result.addPixel(tr.RaytracePixel(x, y, sampler, stats))
		}
	}
	return result, nil
}

// RaytracePixel estimates the radiance of pixel (x, y), writes the mean to
// the sample buffer and the number of samples taken to the count buffer,
// and returns that number.
//
// With one sample per pixel a single ray goes through the pixel center.
// Otherwise rays are jittered inside the pixel and, every SamplesPerBatch
// samples, sampling stops early once the luminance estimate has converged.
func (tr *TileRenderer) RaytracePixel(x, y int, sampler core.Sampler, stats *core.TraversalStats) int {
	width, height := float64(tr.samples.Width), float64(tr.samples.Height)
	camera := tr.scene.Camera

	// Image rows grow downward while camera t grows upward
	cameraRay := func(dx, dy float64) core.Ray {
		return camera.GenerateRay((float64(x)+dx)/width, 1-(float64(y)+dy)/height, sampler)
	}

	if tr.config.SamplesPerPixel == 1 {
		radiance := tr.tracer.EstimateRadiance(cameraRay(0.5, 0.5), sampler, stats)
		tr.samples.Set(x, y, radiance)
		tr.counts.Set(x, y, 1)
		return 1
	}

	var sum core.Vec3
	var s1, s2 float64 // Sums of luminance and squared luminance
	n := 0
	for n < tr.config.SamplesPerPixel {
		if converged(n, s1, s2, tr.config.SamplesPerBatch, tr.config.MaxTolerance) {
			break
		}

		jitter := sampler.Get2D()
		radiance := tr.tracer.EstimateRadiance(cameraRay(jitter.X, jitter.Y), sampler, stats)

		sum = sum.Add(radiance)
		lum := radiance.Luminance()
		s1 += lum
		s2 += lum * lum
		n++
	}

	tr.samples.Set(x, y, sum.Multiply(1.0/float64(n)))
	tr.counts.Set(x, y, n)
	return n
}

// converged reports whether n samples with luminance sums s1 and s2 have a
// 95% confidence half-width within tolerance of their mean. It is only
// evaluated at non-zero multiples of batch, and never before two samples.
func converged(n int, s1, s2 float64, batch int, tolerance float64) bool {
	if batch <= 0 || n < 2 || n%batch != 0 {
		return false
	}

	count := float64(n)
	mean := s1 / count
	variance := math.Max(0, (s2-s1*s1/count)/(count-1))
	halfWidth := confidenceZ * math.Sqrt(variance/count)
	return halfWidth <= tolerance*mean
}
