// Package spatial answers pointer hit-tests against the current node positions.
// The index is rebuilt wholesale from positions; it holds no incremental state.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is an indexed position with the identity of the node it belongs to
type Point struct {
	ID string
	X  float64
	Y  float64
}

// entry carries insertion order for the tie-break
type entry struct {
	Point
	order int
}

var _ kdtree.Comparable = entry{}

// Compare returns the signed distance of e from the plane through c perpendicular to d
func (e entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	o := c.(entry)
	if d == 0 {
		return e.X - o.X
	}
	return e.Y - o.Y
}

func (e entry) Dims() int { return 2 }

// Distance is squared euclidean, as the kd-tree pruning expects
func (e entry) Distance(c kdtree.Comparable) float64 {
	o := c.(entry)
	dx, dy := e.X-o.X, e.Y-o.Y
	return dx*dx + dy*dy
}

// entries implements kdtree.Interface over a flat slice
type entries []entry

func (p entries) Index(i int) kdtree.Comparable         { return p[i] }
func (p entries) Len() int                              { return len(p) }
func (p entries) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p entries) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{entries: p, dim: d}, kdtree.MedianOfMedians(plane{entries: p, dim: d}))
}

// plane sorts entries along one dimension for pivot selection
type plane struct {
	entries
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	if p.dim == 0 {
		return p.entries[i].X < p.entries[j].X
	}
	return p.entries[i].Y < p.entries[j].Y
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{entries: p.entries[start:end], dim: p.dim}
}

func (p plane) Swap(i, j int) {
	p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
}

// Index is a 2D nearest-point index
// Ties between equidistant points resolve to the earliest inserted point
type Index struct {
	tree *kdtree.Tree
	size int
}

// New returns an empty index
func New() *Index {
	return &Index{}
}

// Build replaces the index contents with points, O(n log n)
// Non-finite points are skipped; the previous tree is released
func (idx *Index) Build(points []Point) {
	list := make(entries, 0, len(points))
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		list = append(list, entry{Point: p, order: i})
	}

	idx.size = len(list)
	if idx.size == 0 {
		idx.tree = nil
		return
	}
	idx.tree = kdtree.New(list, false)
}

// Len returns the number of indexed points
func (idx *Index) Len() int {
	return idx.size
}

// FindNearest returns the closest point within maxRadius (inclusive) of (x, y)
// ok is false when the index is empty or the closest point lies beyond maxRadius
func (idx *Index) FindNearest(x, y, maxRadius float64) (Point, bool) {
	if idx.tree == nil || maxRadius < 0 || math.IsNaN(maxRadius) {
		return Point{}, false
	}

	keep := kdtree.NewDistKeeper(maxRadius * maxRadius)
	idx.tree.NearestSet(keep, entry{Point: Point{X: x, Y: y}})

	best := entry{order: -1}
	bestDist := math.Inf(1)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		e := c.Comparable.(entry)
		if c.Dist < bestDist || (c.Dist == bestDist && e.order < best.order) {
			best, bestDist = e, c.Dist
		}
	}
	if best.order < 0 {
		return Point{}, false
	}
	return best.Point, true
}
