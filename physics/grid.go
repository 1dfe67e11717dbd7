package physics

import (
	"math"
)

type cellKey struct {
	x, y int
}

// bucketGrid is a sparse uniform grid of body indices for neighbour queries
// Rebuilt every step from scratch; Clear drops all keys so moving bodies do not grow it
type bucketGrid struct {
	cell  float64
	cells map[cellKey][]int
}

// Reset clears the grid and sets the cell edge length
func (g *bucketGrid) Reset(cell float64) {
	if g.cells == nil {
		g.cells = make(map[cellKey][]int)
	}
	clear(g.cells)
	if !(cell > 0) {
		cell = 1
	}
	g.cell = cell
}

func (g *bucketGrid) key(x, y float64) cellKey {
	return cellKey{int(math.Floor(x / g.cell)), int(math.Floor(y / g.cell))}
}

// Add inserts body i at (x, y)
func (g *bucketGrid) Add(i int, x, y float64) {
	k := g.key(x, y)
	g.cells[k] = append(g.cells[k], i)
}

// Around calls fn for every body in the cells overlapping the square of half-width r around (x, y)
func (g *bucketGrid) Around(x, y, r float64, fn func(j int)) {
	lo := g.key(x-r, y-r)
	hi := g.key(x+r, y+r)
	for cy := lo.y; cy <= hi.y; cy++ {
		for cx := lo.x; cx <= hi.x; cx++ {
			for _, j := range g.cells[cellKey{cx, cy}] {
				fn(j)
			}
		}
	}
}
