package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Primitives", "Lights", "Description"})
	for _, info := range scene.List() {
		sc, err := scene.Lookup(info.Name)
		if err != nil {
			return err
		}
		table.Append([]string{
			info.Name,
			fmt.Sprintf("%d", sc.PrimitiveCount()),
			fmt.Sprintf("%d", len(sc.Lights)),
			info.Description,
		})
	}
	table.Render()

	_, err := fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}
