package geometry

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes    int
	LeafNodes     int
	MaxDepth      int
	AvgLeafDepth  float64
	Primitives    int
	MinLeafSize   int
	MaxLeafSize   int
	AvgLeafSize   float64
	RootSurface   float64 // Surface area of the root box
	ArenaCapacity int
}

// Stats walks the hierarchy and collects structural statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{ArenaCapacity: cap(bvh.nodes)}
	if bvh.Empty() {
		return stats
	}

	stats.MinLeafSize = len(bvh.primitives)
	stats.RootSurface = bvh.nodes[0].box.SurfaceArea()
	bvh.collectStats(0, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgLeafDepth /= float64(stats.LeafNodes)
		stats.AvgLeafSize = float64(stats.Primitives) / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(index, depth int, stats *BVHStats) {
	node := &bvh.nodes[index]
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.isLeaf() {
		size := node.end - node.start
		stats.LeafNodes++
		stats.Primitives += size
		stats.AvgLeafDepth += float64(depth) // Divided by leaf count in Stats
		stats.MinLeafSize = min(stats.MinLeafSize, size)
		stats.MaxLeafSize = max(stats.MaxLeafSize, size)
		return
	}

	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}

// Table renders the statistics as a text table
func (s BVHStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", "Value"})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", s.TotalNodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.LeafNodes)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Avg leaf depth", fmt.Sprintf("%.2f", s.AvgLeafDepth)})
	table.Append([]string{"Leaf size (min/avg/max)", fmt.Sprintf("%d / %.2f / %d", s.MinLeafSize, s.AvgLeafSize, s.MaxLeafSize)})
	table.Append([]string{"Root surface area", fmt.Sprintf("%.3f", s.RootSurface)})
	table.Render()
	return buf.String()
}
