package vmath

import (
	"math"
)

// GridTraverser is a zero-allocation iterator over the unit cells a segment crosses (Amanatides-Woo DDA)
// Cell (i, j) covers [i, i+1) x [j, j+1)
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator from (x1, y1) to (x2, y2)
// Endpoints must be finite; clip with ClipSegment first
func NewGridTraverser(x1, y1, x2, y2 float64) GridTraverser {
	t := GridTraverser{
		currX: int(math.Floor(x1)), currY: int(math.Floor(y1)),
		targetX: int(math.Floor(x2)), targetY: int(math.Floor(y2)),
	}

	dx := x2 - x1
	dy := y2 - y1

	t.stepX, t.stepY = 1, 1
	if dx < 0 {
		t.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
	}

	if dx == 0 {
		t.tMaxX = math.Inf(1)
	} else {
		t.tDeltaX = 1 / dx
		fx := x1 - math.Floor(x1)
		if t.stepX > 0 {
			t.tMaxX = (1 - fx) * t.tDeltaX
		} else {
			t.tMaxX = fx * t.tDeltaX
		}
	}

	if dy == 0 {
		t.tMaxY = math.Inf(1)
	} else {
		t.tDeltaY = 1 / dy
		fy := y1 - math.Floor(y1)
		if t.stepY > 0 {
			t.tMaxY = (1 - fy) * t.tDeltaY
		} else {
			t.tMaxY = fy * t.tDeltaY
		}
	}

	return t
}

// Next advances the traverser to the next cell
// Returns true if a valid cell is available via Pos()
// Terminates by checking target bounds before stepping
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	if t.tMaxX < t.tMaxY {
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		} else {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	} else if t.tMaxX > t.tMaxY {
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		} else {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
	} else {
		// Diagonal step
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	}

	return true
}

// Pos returns the current grid coordinates
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}

// ClipSegment clips a segment to the box (Liang-Barsky)
// ok is false when the segment misses the box or has non-finite endpoints
func ClipSegment(x1, y1, x2, y2 float64, box Box) (cx1, cy1, cx2, cy2 float64, ok bool) {
	if !Finite(x1) || !Finite(y1) || !Finite(x2) || !Finite(y2) {
		return 0, 0, 0, 0, false
	}
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x1 - box.Min.X},
		{dx, box.Max.X - x1},
		{-dy, y1 - box.Min.Y},
		{dy, box.Max.Y - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}

	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}
