package geometry

import (
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// SplitMethod selects how an interior node partitions its primitive range
type SplitMethod int

const (
	// SplitLongestAxis sorts the range by centroid along the longest axis of
	// the node box, then splits at the median by count
	SplitLongestAxis SplitMethod = iota
	// SplitMidpoint splits at the median by count in input order
	SplitMidpoint
)

// String returns the flag name of the split method
func (m SplitMethod) String() string {
	switch m {
	case SplitMidpoint:
		return "midpoint"
	default:
		return "longest-axis"
	}
}

// ParseSplitMethod converts a flag value into a SplitMethod
func ParseSplitMethod(name string) (SplitMethod, bool) {
	switch name {
	case "longest-axis", "":
		return SplitLongestAxis, true
	case "midpoint":
		return SplitMidpoint, true
	}
	return SplitLongestAxis, false
}

// BVHOptions configures BVH construction
type BVHOptions struct {
	MaxLeafSize int // Leaves hold at most this many primitives (minimum 1)
	Split       SplitMethod
}

// DefaultBVHOptions returns sensible default values
func DefaultBVHOptions() BVHOptions {
	return BVHOptions{
		MaxLeafSize: 4,
		Split:       SplitLongestAxis,
	}
}

// noChild marks the child slots of a leaf
const noChild = -1

// bvhNode is one entry of the BVH node arena. A leaf has both children set
// to noChild and owns primitives[start:end]; an interior node owns no range.
type bvhNode struct {
	box         core.AABB
	start, end  int
	left, right int
}

func (n *bvhNode) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// BVH is a bounding-volume hierarchy over a private copy of the primitives.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	primitives []Primitive
	nodes      []bvhNode // nodes[0] is the root when non-empty
}

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []Primitive, opts BVHOptions) *BVH {
	if opts.MaxLeafSize < 1 {
		opts.MaxLeafSize = 1
	}

	// Work on a copy so callers' slices are never reordered
	prims := make([]Primitive, len(primitives))
	copy(prims, primitives)

	bvh := &BVH{primitives: prims}
	if len(prims) == 0 {
		return bvh
	}

	// A binary tree with at most len(prims) leaves has fewer than 2n nodes
	bvh.nodes = make([]bvhNode, 0, 2*len(prims)-1)
	bvh.build(0, len(prims), opts)
	return bvh
}

// build appends the subtree for primitives[start:end] and returns its index
func (bvh *BVH) build(start, end int, opts BVHOptions) int {
	box := core.EmptyAABB()
	for _, p := range bvh.primitives[start:end] {
		box = box.Expand(p.BoundingBox())
	}

	index := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, bvhNode{box: box, start: start, end: end, left: noChild, right: noChild})

	count := end - start
	if count <= opts.MaxLeafSize {
		return index
	}

	if opts.Split == SplitLongestAxis {
		sortByCentroid(bvh.primitives[start:end], box.LongestAxis())
	}

	mid := start + count/2
	left := bvh.build(start, mid, opts)
	right := bvh.build(mid, end, opts)

	// Re-take the node: the recursive appends may have moved the arena
	node := &bvh.nodes[index]
	node.left, node.right = left, right
	node.start, node.end = 0, 0
	return index
}

// sortByCentroid stably orders primitives by bounding box centroid along axis
func sortByCentroid(prims []Primitive, axis int) {
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Centroid().Axis(axis) < prims[j].BoundingBox().Centroid().Axis(axis)
	})
}

// Empty reports whether the BVH holds no primitives
func (bvh *BVH) Empty() bool {
	return len(bvh.nodes) == 0
}

// BoundingBox returns the box of the whole hierarchy, empty when there is no geometry
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Empty() {
		return core.EmptyAABB()
	}
	return bvh.nodes[0].box
}

// Primitives returns the BVH's primitives in leaf order
func (bvh *BVH) Primitives() []Primitive {
	return bvh.primitives
}

// HasIntersection reports whether the ray hits any primitive within
// [ray.MinT, ray.MaxT]. It returns on the first hit found.
func (bvh *BVH) HasIntersection(ray core.Ray, stats *core.TraversalStats) bool {
	stats.AddRay()
	if bvh.Empty() {
		return false
	}
	return bvh.hasIntersectionNode(0, ray, stats)
}

func (bvh *BVH) hasIntersectionNode(index int, ray core.Ray, stats *core.TraversalStats) bool {
	node := &bvh.nodes[index]

	stats.AddNodeVisit()
	t0, t1 := ray.MinT, ray.MaxT
	if !node.box.Intersect(ray, &t0, &t1) {
		return false
	}

	if node.isLeaf() {
		for _, p := range bvh.primitives[node.start:node.end] {
			stats.AddPrimitiveTest()
			if p.HasIntersection(ray) {
				return true
			}
		}
		return false
	}

	return bvh.hasIntersectionNode(node.left, ray, stats) ||
		bvh.hasIntersectionNode(node.right, ray, stats)
}

// Intersect finds the closest hit within [ray.MinT, ray.MaxT]. Each closer
// hit narrows ray.MaxT, so subtrees visited later are pruned against the
// closest distance found so far and isect always holds the closest hit.
func (bvh *BVH) Intersect(ray *core.Ray, isect *Intersection, stats *core.TraversalStats) bool {
	stats.AddRay()
	if bvh.Empty() {
		return false
	}
	return bvh.intersectNode(0, ray, isect, stats)
}

func (bvh *BVH) intersectNode(index int, ray *core.Ray, isect *Intersection, stats *core.TraversalStats) bool {
	node := &bvh.nodes[index]

	stats.AddNodeVisit()
	t0, t1 := ray.MinT, ray.MaxT
	if !node.box.Intersect(*ray, &t0, &t1) {
		return false
	}

	if node.isLeaf() {
		hit := false
		for _, p := range bvh.primitives[node.start:node.end] {
			stats.AddPrimitiveTest()
			if p.Intersect(ray, isect) {
				hit = true
			}
		}
		return hit
	}

	hitLeft := bvh.intersectNode(node.left, ray, isect, stats)
	hitRight := bvh.intersectNode(node.right, ray, isect, stats)
	return hitLeft || hitRight
}
