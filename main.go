package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/cmd"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bvhpt"
	app.Usage = "render scenes using BVH-accelerated path tracing"
	app.Version = "0.1.0"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Description: `
Build a BVH over the scene, then estimate the radiance of every pixel with a
path tracer. Pixels stop sampling early once their luminance estimate has
converged; use --rate to see how many samples each pixel took.`,
			ArgsUsage: "scene_name",
			Flags:     cmd.RenderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "bvh",
			Usage:     "print BVH statistics for a scene",
			ArgsUsage: "scene_name",
			Flags:     cmd.BVHProbeFlags,
			Action:    cmd.ShowBVH,
		},
		{
			Name:   "info",
			Usage:  "print host cpu and memory information",
			Action: cmd.SystemInfo,
		},
	}
	return app
}

// run executes the app and reports a failed command on the app's error
// writer, returning the process exit code
func run(app *cli.App, args []string) int {
	if err := app.Run(args); err != nil {
		fmt.Fprintf(app.ErrWriter, "%s: %v\n", app.Name, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(newApp(), os.Args))
}
