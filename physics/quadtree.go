package physics

import (
	"math"

	"github.com/lixenwraith/forcegraph/vmath"
)

// maxQuadDepth bounds subdivision; deeper bodies share a leaf
const maxQuadDepth = 32

// quad is a square region of the Barnes-Hut tree
// Internal quads aggregate count and centroid of everything below them
type quad struct {
	x0, y0, size float64
	cx, cy       float64
	count        int
	children     [4]int32 // -1 = empty slot
	bodies       []int    // leaf payload: one body, or coincident bodies
	leaf         bool
}

// quadtree approximates many-body repulsion in O(n log n)
// Quads live in a reused slice so rebuilds do not grow memory beyond the peak node count
type quadtree struct {
	quads []quad
	stack []int32
	nodes []Node
}

// build replaces the tree with one covering nodes
func (t *quadtree) build(nodes []Node) {
	for i := range t.quads {
		t.quads[i].bodies = t.quads[i].bodies[:0]
	}
	t.quads = t.quads[:0]
	t.nodes = nodes
	if len(nodes) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range nodes {
		minX = math.Min(minX, nodes[i].X)
		minY = math.Min(minY, nodes[i].Y)
		maxX = math.Max(maxX, nodes[i].X)
		maxY = math.Max(maxY, nodes[i].Y)
	}
	size := math.Max(maxX-minX, maxY-minY)
	if !(size > 0) {
		size = 1
	}
	// Pad so the max edge falls strictly inside the root
	size *= 1.0001

	t.newQuad(minX, minY, size)
	for i := range nodes {
		t.insert(0, i, 0)
	}
}

func (t *quadtree) newQuad(x0, y0, size float64) int32 {
	idx := len(t.quads)
	if idx < cap(t.quads) {
		t.quads = t.quads[:idx+1]
		bodies := t.quads[idx].bodies[:0]
		t.quads[idx] = quad{bodies: bodies}
	} else {
		t.quads = append(t.quads, quad{})
	}
	q := &t.quads[idx]
	q.x0, q.y0, q.size = x0, y0, size
	q.children = [4]int32{-1, -1, -1, -1}
	q.leaf = true
	return int32(idx)
}

// insert adds body i below quad qi, updating aggregates on the way down
func (t *quadtree) insert(qi int32, i int, depth int) {
	x, y := t.nodes[i].X, t.nodes[i].Y

	q := &t.quads[qi]
	n := float64(q.count)
	q.cx = (q.cx*n + x) / (n + 1)
	q.cy = (q.cy*n + y) / (n + 1)
	q.count++

	if q.leaf {
		if len(q.bodies) == 0 || depth >= maxQuadDepth {
			q.bodies = append(q.bodies, i)
			return
		}
		first := t.nodes[q.bodies[0]]
		if first.X == x && first.Y == y {
			q.bodies = append(q.bodies, i)
			return
		}

		// Split: push existing bodies one level down
		old := append([]int(nil), q.bodies...)
		q.bodies = q.bodies[:0]
		q.leaf = false
		for _, b := range old {
			t.insertChild(qi, b, depth)
		}
	}
	t.insertChild(qi, i, depth)
}

func (t *quadtree) insertChild(qi int32, i int, depth int) {
	x, y := t.nodes[i].X, t.nodes[i].Y
	q := t.quads[qi]
	half := q.size / 2

	slot := 0
	cx0, cy0 := q.x0, q.y0
	if x >= q.x0+half {
		slot |= 1
		cx0 += half
	}
	if y >= q.y0+half {
		slot |= 2
		cy0 += half
	}

	child := q.children[slot]
	if child < 0 {
		// newQuad may reallocate t.quads; re-index after
		child = t.newQuad(cx0, cy0, half)
		t.quads[qi].children[slot] = child
	}
	t.insert(child, i, depth+1)
}

// contains reports whether (x, y) lies in the closed square of q
func (q *quad) contains(x, y float64) bool {
	return x >= q.x0 && x <= q.x0+q.size && y >= q.y0 && y <= q.y0+q.size
}

// forceOn returns the velocity change on body i from every other body
// strength is charge*alpha; negative repels
// Quads that contain the body are always opened so it never repels itself
func (t *quadtree) forceOn(i int, strength, theta2, distMin2, distMax2 float64, rng *vmath.FastRand) (dvx, dvy float64) {
	if len(t.quads) == 0 {
		return 0, 0
	}
	px, py := t.nodes[i].X, t.nodes[i].Y

	apply := func(dx, dy, l, weight float64) {
		if distMax2 > 0 && l >= distMax2 {
			return
		}
		if l < distMin2 {
			l = math.Sqrt(distMin2 * l)
		}
		w := weight * strength / l
		dvx += dx * w
		dvy += dy * w
	}

	t.stack = append(t.stack[:0], 0)
	for len(t.stack) > 0 {
		qi := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		q := &t.quads[qi]
		if q.count == 0 {
			continue
		}

		dx, dy := q.cx-px, q.cy-py
		l := dx*dx + dy*dy
		if !q.contains(px, py) && q.size*q.size/theta2 < l {
			apply(dx, dy, l, float64(q.count))
			continue
		}

		if !q.leaf {
			for _, c := range q.children {
				if c >= 0 {
					t.stack = append(t.stack, c)
				}
			}
			continue
		}

		for _, j := range q.bodies {
			if j == i {
				continue
			}
			dx := t.nodes[j].X - px
			dy := t.nodes[j].Y - py
			if dx == 0 {
				dx = rng.Jiggle()
			}
			if dy == 0 {
				dy = rng.Jiggle()
			}
			apply(dx, dy, dx*dx+dy*dy, 1)
		}
	}
	return dvx, dvy
}
