package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// SystemInfo prints the host resources available to the renderer.
func SystemInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Host", "Value"})

	if infos, err := cpu.Info(); err != nil {
		logger.Warningf("could not query cpu info: %v", err)
	} else if len(infos) > 0 {
		table.Append([]string{"CPU", infos[0].ModelName})
		table.Append([]string{"Clock", fmt.Sprintf("%.2f GHz", infos[0].Mhz/1000)})
	}

	physical, err := cpu.Counts(false)
	if err != nil {
		logger.Warningf("could not query physical cores: %v", err)
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		logger.Warningf("could not query logical cores: %v", err)
	}
	table.Append([]string{"Cores (physical/logical)", fmt.Sprintf("%d / %d", physical, logical)})

	if vm, err := mem.VirtualMemory(); err != nil {
		logger.Warningf("could not query memory: %v", err)
	} else {
		table.Append([]string{"Memory (available/total)", fmt.Sprintf("%s / %s", formatBytes(vm.Available), formatBytes(vm.Total))})
	}

	table.Append([]string{"Default render workers", fmt.Sprintf("%d", runtime.NumCPU())})
	table.Render()

	_, err = fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}

func formatBytes(n uint64) string {
	const gib = 1 << 30
	return fmt.Sprintf("%.1f GiB", float64(n)/gib)
}
