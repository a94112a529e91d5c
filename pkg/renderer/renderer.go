package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Renderer renders a built scene into a sample buffer using a tile-parallel
// worker pool
type Renderer struct {
	scene   *scene.Scene
	tracer  *integrator.PathTracer
	config  SamplingConfig
	samples *SampleBuffer
	counts  *SampleCountBuffer
}

// NewRenderer creates a renderer for a frame of width x height pixels. The
// scene's BVH must already be built.
func NewRenderer(s *scene.Scene, tracer *integrator.PathTracer, config SamplingConfig, width, height int) *Renderer {
	r := &Renderer{
		scene:   s,
		tracer:  tracer,
		config:  config,
		samples: NewSampleBuffer(0, 0),
		counts:  NewSampleCountBuffer(0, 0),
	}
	r.SetFrameSize(width, height)
	return r
}

// SetFrameSize resizes and clears both buffers and matches the camera's
// aspect ratio to the frame
func (r *Renderer) SetFrameSize(width, height int) {
	r.samples.Resize(width, height)
	r.counts.Resize(width, height)
	if width > 0 && height > 0 {
		r.scene.SetAspectRatio(float64(width) / float64(height))
	}
}

// Clear resets both buffers to zero without changing the frame size
func (r *Renderer) Clear() {
	r.samples.Clear()
	r.counts.Clear()
}

// SampleBuffer returns the averaged radiance buffer
func (r *Renderer) SampleBuffer() *SampleBuffer {
	return r.samples
}

// SampleCountBuffer returns the per-pixel sample count buffer
func (r *Renderer) SampleCountBuffer() *SampleCountBuffer {
	return r.counts
}

// Image tone maps the current sample buffer
func (r *Renderer) Image(tm ToneMap) *image.RGBA {
	return r.samples.ToImage(tm)
}

// Render renders every pixel once and returns aggregate statistics.
// Cancelling ctx stops the render between tile rows; the error is then
// ctx.Err() and the buffers hold a partial frame.
func (r *Renderer) Render(ctx context.Context) (RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return RenderStats{}, err
	}
	if r.scene.BVH == nil {
		return RenderStats{}, fmt.Errorf("scene has no BVH: call Build before rendering")
	}

	start := time.Now()
	width, height := r.samples.Width, r.samples.Height
	tiles := NewTileGrid(width, height, r.config.TileSize)

	tileRenderer := NewTileRenderer(r.scene, r.tracer, r.config, r.samples, r.counts)
	pool := NewWorkerPool(tileRenderer, r.config.workers(), len(tiles))

	logger.Infof("rendering %dx%d: %d tiles on %d workers, up to %d samples/pixel",
		width, height, len(tiles), pool.NumWorkers(), r.config.SamplesPerPixel)

	pool.Start(ctx)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Seed: r.config.Seed})
	}
	pool.Stop()

	stats := newRenderStats(r.config.SamplesPerPixel)
	done, firstErr := collectResults(pool.Results(), &stats, len(tiles))

	stats.finalize()
	stats.Traversal = pool.TraversalStats()
	stats.Workers = pool.NumWorkers()
	stats.Tiles = len(tiles)
	stats.Elapsed = time.Since(start)

	if firstErr != nil {
		logger.Warningf("render stopped after %d/%d tiles: %v", done, len(tiles), firstErr)
		return stats, firstErr
	}
	logger.Infof("rendered %d pixels in %v (%.2f samples/pixel)", stats.TotalPixels, stats.Elapsed, stats.AverageSamples)
	return stats, nil
}

// collectResults drains tile results into stats. Pixels finished by a tile
// that stopped with an error are still counted, since they were written to
// the buffers. It returns the number of complete tiles and the first error.
func collectResults(results <-chan TileResult, stats *RenderStats, total int) (int, error) {
	var firstErr error
	done := 0
	for result := range results {
		stats.merge(result.Stats)
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		done++
		logger.Debugf("tile %d done (%d/%d)", result.TileID, done, total)
	}
	return done, firstErr
}

// Autofocus sets the camera's focus distance to the distance of the
// closest hit seen through the center of pixel (x, y). It reports false and
// leaves the camera unchanged when the ray escapes the scene.
func (r *Renderer) Autofocus(x, y int) (float64, bool) {
	if r.samples.Width == 0 || r.samples.Height == 0 || r.scene.BVH == nil {
		return 0, false
	}

	u := (float64(x) + 0.5) / float64(r.samples.Width)
	v := 1 - (float64(y)+0.5)/float64(r.samples.Height)
	ray := r.scene.Camera.GenerateRay(u, v, nil)

	var isect geometry.Intersection
	var stats core.TraversalStats
	if !r.scene.BVH.Intersect(&ray, &isect, &stats) {
		return 0, false
	}

	r.scene.Camera.SetFocusDistance(isect.T)
	logger.Infof("autofocus at (%d, %d): focus distance %.4f", x, y, isect.T)
	return isect.T, true
}
