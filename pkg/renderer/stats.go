package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel

	Traversal core.TraversalStats // BVH work summed over workers
	Workers   int
	Tiles     int
	Elapsed   time.Duration
}

func newRenderStats(maxSamples int) RenderStats {
	return RenderStats{
		MaxSamples: maxSamples,
		MinSamples: maxSamples, // Start with max, will be reduced
	}
}

// addPixel records a pixel that took n samples
func (s *RenderStats) addPixel(n int) {
	s.TotalPixels++
	s.TotalSamples += n
	s.MinSamples = min(s.MinSamples, n)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, n)
}

// merge folds the per-pixel counts of a tile into s
func (s *RenderStats) merge(tile RenderStats) {
	if tile.TotalPixels == 0 {
		return
	}
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.MinSamples = min(s.MinSamples, tile.MinSamples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, tile.MaxSamplesUsed)
}

// finalize calculates derived statistics after all pixels are rendered
func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		s.MinSamples = 0
		return
	}
	s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	perRay := func(v int64) string {
		if s.Traversal.Rays == 0 {
			return "-"
		}
		return fmt.Sprintf("%.2f", float64(v)/float64(s.Traversal.Rays))
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Render", "Value", "Per ray"})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", s.TotalPixels), ""})
	table.Append([]string{"Samples", fmt.Sprintf("%d", s.TotalSamples), ""})
	table.Append([]string{"Samples/pixel (min/avg/max)", fmt.Sprintf("%d / %.2f / %d", s.MinSamples, s.AverageSamples, s.MaxSamplesUsed), ""})
	table.Append([]string{"BVH rays", fmt.Sprintf("%d", s.Traversal.Rays), ""})
	table.Append([]string{"Node visits", fmt.Sprintf("%d", s.Traversal.NodeVisits), perRay(s.Traversal.NodeVisits)})
	table.Append([]string{"Primitive tests", fmt.Sprintf("%d", s.Traversal.PrimitiveTests), perRay(s.Traversal.PrimitiveTests)})
	table.Append([]string{"Workers / tiles", fmt.Sprintf("%d / %d", s.Workers, s.Tiles), ""})
	table.SetFooter([]string{"Elapsed", s.Elapsed.Round(time.Millisecond).String(), ""})
	table.Render()
	return buf.String()
}
