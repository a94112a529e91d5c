package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// BVHProbeFlags are the bvh command flags on top of BVHFlags
var BVHProbeFlags = append([]cli.Flag{
	cli.IntFlag{
		Name:  "grid",
		Value: 64,
		Usage: "cast grid x grid camera rays to measure traversal cost (0 skips)",
	},
}, BVHFlags...)

// ShowBVH builds the hierarchy for a scene and prints its shape and the
// traversal cost of a grid of camera rays.
func ShowBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}
	opts, err := bvhOptions(ctx)
	if err != nil {
		return err
	}
	grid := ctx.Int("grid")
	if grid < 0 {
		return fmt.Errorf("grid %d must not be negative", grid)
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	sc.Build(opts)
	buildTime := time.Since(start)

	out := ctx.App.Writer
	fmt.Fprint(out, sc.BVH.Stats().Table())
	if grid == 0 {
		fmt.Fprintf(out, "build time %v\n", buildTime)
		return nil
	}

	hits, stats := probe(sc, grid)
	fmt.Fprint(out, probeTable(grid*grid, hits, stats, buildTime))
	return nil
}

// probe casts one pinhole camera ray through the center of each grid cell
func probe(sc *scene.Scene, grid int) (int, core.TraversalStats) {
	var stats core.TraversalStats
	hits := 0
	for j := 0; j < grid; j++ {
		for i := 0; i < grid; i++ {
			ray := sc.Camera.GenerateRay((float64(i)+0.5)/float64(grid), (float64(j)+0.5)/float64(grid), nil)
			var isect geometry.Intersection
			if sc.BVH.Intersect(&ray, &isect, &stats) {
				hits++
			}
		}
	}
	return hits, stats
}

func probeTable(rays, hits int, stats core.TraversalStats, buildTime time.Duration) string {
	perRay := func(v int64) string {
		return fmt.Sprintf("%.2f", float64(v)/float64(rays))
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Probe", "Value", "Per ray"})
	table.Append([]string{"Rays", fmt.Sprintf("%d", rays), ""})
	table.Append([]string{"Hits", fmt.Sprintf("%d", hits), fmt.Sprintf("%.2f", float64(hits)/float64(rays))})
	table.Append([]string{"Node visits", fmt.Sprintf("%d", stats.NodeVisits), perRay(stats.NodeVisits)})
	table.Append([]string{"Primitive tests", fmt.Sprintf("%d", stats.PrimitiveTests), perRay(stats.PrimitiveTests)})
	table.SetFooter([]string{"Build time", buildTime.Round(time.Microsecond).String(), ""})
	table.Render()
	return buf.String()
}
