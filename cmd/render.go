package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// BVHFlags configure hierarchy construction for the render and bvh commands
var BVHFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "leaf-size",
		Value: geometry.DefaultBVHOptions().MaxLeafSize,
		Usage: "maximum primitives per BVH leaf",
	},
	cli.StringFlag{
		Name:  "split",
		Value: geometry.DefaultBVHOptions().Split.String(),
		Usage: "BVH split method: longest-axis or midpoint",
	},
	cli.StringFlag{
		Name:  "mesh",
		Usage: "add the triangles of a PLY file to the scene",
	},
	cli.BoolFlag{
		Name:  "mesh-fit",
		Usage: "scale and center the --mesh inside the middle of the scene",
	},
}

// RenderFlags are the flags of the render command
var RenderFlags = append([]cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: 400,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 400,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp, s",
		Value: renderer.DefaultSamplingConfig().SamplesPerPixel,
		Usage: "maximum samples per pixel",
	},
	cli.IntFlag{
		Name:  "batch, a",
		Value: renderer.DefaultSamplingConfig().SamplesPerBatch,
		Usage: "test pixel convergence every this many samples (0 disables adaptive sampling)",
	},
	cli.Float64Flag{
		Name:  "tolerance",
		Value: renderer.DefaultSamplingConfig().MaxTolerance,
		Usage: "relative 95% confidence half-width at which a pixel stops sampling",
	},
	cli.IntFlag{
		Name:  "max-depth, m",
		Value: integrator.DefaultConfig().MaxRayDepth,
		Usage: "maximum path depth",
	},
	cli.IntFlag{
		Name:  "light-samples, l",
		Value: integrator.DefaultConfig().AreaLightSamples,
		Usage: "shadow rays per area light",
	},
	cli.BoolFlag{
		Name:  "hemisphere, H",
		Usage: "estimate direct lighting by uniform hemisphere sampling",
	},
	cli.IntFlag{
		Name:  "rr-bounces",
		Value: integrator.DefaultConfig().RussianRouletteMinBounces,
		Usage: "bounces before russian roulette may terminate a path",
	},
	cli.Float64Flag{
		Name:  "rr-prob",
		Value: integrator.DefaultConfig().ContinuationProbability,
		Usage: "russian roulette continuation probability",
	},
	cli.BoolFlag{
		Name:  "normals",
		Usage: "shade surface normals instead of radiance",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "render workers (0 uses every CPU)",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: renderer.DefaultSamplingConfig().TileSize,
		Usage: "tile edge length in pixels",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultSamplingConfig().Seed,
		Usage: "random seed",
	},
	cli.Float64Flag{
		Name:  "aperture",
		Value: 0,
		Usage: "lens diameter (0 keeps the scene camera)",
	},
	cli.BoolFlag{
		Name:  "autofocus",
		Usage: "focus on the surface seen through the frame center",
	},
	cli.Float64Flag{
		Name:  "gamma",
		Value: renderer.DefaultToneMap().Gamma,
		Usage: "display gamma",
	},
	cli.Float64Flag{
		Name:  "level",
		Value: renderer.DefaultToneMap().Level,
		Usage: "exposure multiplier for tone-mapping",
	},
	cli.Float64Flag{
		Name:  "key",
		Value: renderer.DefaultToneMap().Key,
		Usage: "tone-mapping key value",
	},
	cli.Float64Flag{
		Name:  "white",
		Value: renderer.DefaultToneMap().White,
		Usage: "smallest luminance mapped to white",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.png",
		Usage: "image filename for the rendered frame",
	},
	cli.StringFlag{
		Name:  "rate",
		Usage: "optional image filename for the per-pixel sample rate heat map",
	},
}, BVHFlags...)

// renderOptions collects everything the render command reads from its flags
type renderOptions struct {
	width, height int
	sampling      renderer.SamplingConfig
	integrator    integrator.Config
	bvh           geometry.BVHOptions
	toneMap       renderer.ToneMap
	aperture      float64
	autofocus     bool
	out, rateOut  string
}

func bvhOptions(ctx *cli.Context) (geometry.BVHOptions, error) {
	split, ok := geometry.ParseSplitMethod(ctx.String("split"))
	if !ok {
		return geometry.BVHOptions{}, fmt.Errorf("unknown split method %q", ctx.String("split"))
	}
	if ctx.Int("leaf-size") < 1 {
		return geometry.BVHOptions{}, fmt.Errorf("leaf size %d must be at least 1", ctx.Int("leaf-size"))
	}
	return geometry.BVHOptions{MaxLeafSize: ctx.Int("leaf-size"), Split: split}, nil
}

func parseRenderOptions(ctx *cli.Context) (renderOptions, error) {
	opts := renderOptions{
		width:  ctx.Int("width"),
		height: ctx.Int("height"),
		sampling: renderer.SamplingConfig{
			SamplesPerPixel: ctx.Int("spp"),
			SamplesPerBatch: ctx.Int("batch"),
			MaxTolerance:    ctx.Float64("tolerance"),
			TileSize:        ctx.Int("tile"),
			NumWorkers:      ctx.Int("workers"),
			Seed:            ctx.Int64("seed"),
		},
		integrator: integrator.Config{
			MaxRayDepth:               ctx.Int("max-depth"),
			AreaLightSamples:          ctx.Int("light-samples"),
			HemisphereSampling:        ctx.Bool("hemisphere"),
			RussianRouletteMinBounces: ctx.Int("rr-bounces"),
			ContinuationProbability:   ctx.Float64("rr-prob"),
			ShadeNormals:              ctx.Bool("normals"),
		},
		toneMap: renderer.ToneMap{
			Gamma: ctx.Float64("gamma"),
			Level: ctx.Float64("level"),
			Key:   ctx.Float64("key"),
			White: ctx.Float64("white"),
		},
		aperture:  ctx.Float64("aperture"),
		autofocus: ctx.Bool("autofocus"),
		out:       ctx.String("out"),
		rateOut:   ctx.String("rate"),
	}

	if opts.width < 1 || opts.height < 1 {
		return opts, fmt.Errorf("frame size %dx%d must be at least 1x1", opts.width, opts.height)
	}
	if opts.aperture < 0 {
		return opts, fmt.Errorf("aperture %g must not be negative", opts.aperture)
	}

	var err error
	if opts.bvh, err = bvhOptions(ctx); err != nil {
		return opts, err
	}
	if err = opts.sampling.Validate(); err != nil {
		return opts, err
	}
	if err = opts.integrator.Validate(); err != nil {
		return opts, err
	}
	if err = opts.toneMap.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// RenderFrame renders a still frame of a built-in scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}
	opts, err := parseRenderOptions(ctx)
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	if opts.aperture > 0 {
		sc.CameraConfig.Aperture = opts.aperture
	}

	start := time.Now()
	sc.Build(opts.bvh)
	logger.Infof("built BVH over %d primitives in %v", sc.PrimitiveCount(), time.Since(start))

	if opts.sampling.NumWorkers == 0 {
		logCPUCounts()
	}

	tracer := integrator.NewPathTracer(sc, opts.integrator)
	r := renderer.NewRenderer(sc, tracer, opts.sampling, opts.width, opts.height)

	if opts.autofocus {
		if _, ok := r.Autofocus(opts.width/2, opts.height/2); !ok {
			logger.Notice("autofocus ray escaped the scene; keeping the scene focus distance")
		}
	}

	stats, err := r.Render(context.Background())
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", stats.Table())

	if err := writePNG(opts.out, r.Image(opts.toneMap)); err != nil {
		return err
	}
	logger.Noticef("wrote %s", opts.out)

	if opts.rateOut != "" {
		if err := writePNG(opts.rateOut, r.SampleCountBuffer().RateImage(opts.sampling.SamplesPerPixel)); err != nil {
			return err
		}
		logger.Noticef("wrote %s", opts.rateOut)
	}
	return nil
}

// meshColor is the albedo of meshes added with --mesh
var meshColor = core.NewVec3(0.73, 0.73, 0.73)

// loadScene looks up the scene named by the first argument and adds the
// --mesh file to it
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	sc, err := scene.Lookup(ctx.Args().First())
	if err != nil {
		return nil, err
	}

	path := ctx.String("mesh")
	if path == "" {
		return sc, nil
	}
	mesh, err := loaders.LoadPLY(path, material.NewDiffuse(meshColor))
	if err != nil {
		return nil, err
	}

	if ctx.Bool("mesh-fit") && sc.PrimitiveCount() > 0 {
		bounds := core.EmptyAABB()
		for _, p := range sc.Primitives {
			bounds = bounds.Expand(p.BoundingBox())
		}
		// Middle half of the scene bounds
		quarter := bounds.Extent().Multiply(0.25)
		target := core.NewAABB(bounds.Min.Add(quarter), bounds.Max.Subtract(quarter))
		loaders.FitMesh(mesh, target)
	}

	sc.AddMesh(mesh)
	return sc, nil
}

// logCPUCounts reports the cores the default worker count is derived from
func logCPUCounts() {
	physical, err := cpu.Counts(false)
	if err != nil {
		logger.Debugf("could not query physical cores: %v", err)
		return
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		logger.Debugf("could not query logical cores: %v", err)
		return
	}
	logger.Infof("host has %d physical / %d logical cores", physical, logical)
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
