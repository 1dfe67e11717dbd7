package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/forcegraph/vmath"
)

// Braille cells hold a 2x4 dot matrix
const (
	DotsX = 2
	DotsY = 4

	brailleBase = 0x2800
)

// dotBits maps [dy][dx] inside a cell to its braille bit
var dotBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell is one terminal cell of the canvas
// Text takes precedence over dots; Wide marks the right half of a double-width rune
type Cell struct {
	Dots uint8
	Fg   RGB

	Text   rune
	TextFg RGB
	Bold   bool
	Wide   bool
}

// Canvas is a braille-resolution Surface backed by a cell array
// Drawing coordinates are dots: (0,0) is the top-left dot, x grows right, y grows down
type Canvas struct {
	cells  []Cell
	width  int // cells
	height int
	bg     RGB

	// BoldLabelSize is the label size at which text switches to bold
	BoldLabelSize float64
}

// NewCanvas creates a canvas of width x height terminal cells
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{BoldLabelSize: 15}
	c.Resize(width, height)
	return c
}

// Resize adjusts canvas dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.width = width
	c.height = height
	c.Clear(c.bg)
}

// Cells returns the canvas size in terminal cells
func (c *Canvas) Cells() (int, int) {
	return c.width, c.height
}

// Size returns the canvas size in dots
func (c *Canvas) Size() (int, int) {
	return c.width * DotsX, c.height * DotsY
}

// Background returns the color set by the last Clear
func (c *Canvas) Background() RGB {
	return c.bg
}

// Clear resets all cells to empty using exponential copy
func (c *Canvas) Clear(bg RGB) {
	c.bg = bg
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Fg: bg, TextFg: bg}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

// Cell returns the cell at (x, y) in cell coordinates
func (c *Canvas) Cell(x, y int) (Cell, bool) {
	if !c.inBounds(x, y) {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// SetDot lights dot (x, y) blending col over the cell color
// A braille cell carries one color, so later dots tint the whole cell
func (c *Canvas) SetDot(x, y int, col RGB, alpha float64) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/DotsX, y/DotsY
	if !c.inBounds(cx, cy) {
		return
	}
	cell := &c.cells[cy*c.width+cx]
	if cell.Dots == 0 {
		cell.Fg = Blend(c.bg, col, alpha)
	} else {
		cell.Fg = Blend(cell.Fg, col, alpha)
	}
	cell.Dots |= dotBits[y%DotsY][x%DotsX]
}

// Dot reports whether dot (x, y) is lit
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	cell, ok := c.Cell(x/DotsX, y/DotsY)
	return ok && cell.Dots&dotBits[y%DotsY][x%DotsX] != 0
}

// bounds is the dot rectangle lines are clipped to
func (c *Canvas) bounds() vmath.Box {
	w, h := c.Size()
	return vmath.Box{Max: vmath.Vec{X: float64(w), Y: float64(h)}}
}

// Line draws a segment in dot coordinates
// Widths below one dot fade the line instead of thinning it
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	if width < 1 {
		alpha *= math.Max(width, 0.25)
		width = 1
	}

	// Perpendicular offsets for thick lines
	n := int(math.Round(width))
	nx, ny := 0.0, 0.0
	if n > 1 {
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l > vmath.Epsilon {
			nx, ny = -dy/l, dx/l
		}
	}

	box := c.bounds()
	for k := 0; k < n; k++ {
		off := float64(k) - float64(n-1)/2
		ax, ay := x0+nx*off, y0+ny*off
		bx, by := x1+nx*off, y1+ny*off
		ax, ay, bx, by, ok := vmath.ClipSegment(ax, ay, bx, by, box)
		if !ok {
			continue
		}
		t := vmath.NewGridTraverser(ax, ay, bx, by)
		for t.Next() {
			x, y := t.Pos()
			c.SetDot(x, y, col, alpha)
		}
	}
}

// Circle draws a filled disc of radius r with a stroke ring of strokeWidth, in dot coordinates
// Discs under one dot still light the center dot
func (c *Canvas) Circle(cx, cy, r float64, fill, stroke RGB, strokeWidth float64) {
	if !vmath.Finite(cx) || !vmath.Finite(cy) || !vmath.Finite(r) {
		return
	}
	w, h := c.Size()
	outer := r + strokeWidth/2
	if cx+outer < 0 || cy+outer < 0 || cx-outer > float64(w) || cy-outer > float64(h) {
		return
	}

	if r < 0.75 {
		c.SetDot(int(math.Floor(cx)), int(math.Floor(cy)), fill, 1)
		return
	}

	inner := r - strokeWidth/2
	drawStroke := strokeWidth >= 0.5
	inner2, outer2 := inner*inner, outer*outer
	if !drawStroke {
		outer2 = r * r
	}

	x0 := max(int(math.Floor(cx-outer)), 0)
	x1 := min(int(math.Ceil(cx+outer)), w-1)
	y0 := max(int(math.Floor(cy-outer)), 0)
	y1 := min(int(math.Ceil(cy+outer)), h-1)
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			d2 := dx*dx + dy*dy
			switch {
			case d2 > outer2:
			case drawStroke && d2 > inner2:
				c.SetDot(x, y, stroke, 1)
			default:
				c.SetDot(x, y, fill, 1)
			}
		}
	}
}

// Text writes s starting at the cell containing dot (x, y)
// Runes are laid out by display width; text past the right edge is dropped
func (c *Canvas) Text(x, y float64, s string, col RGB, size float64) {
	if !vmath.Finite(x) || !vmath.Finite(y) || y < 0 {
		return
	}
	row := int(y) / DotsY
	col0 := int(math.Floor(x / DotsX))
	c.TextAt(col0, row, s, col, size >= c.BoldLabelSize)
}

// TextAt writes s at cell (col, row)
func (c *Canvas) TextAt(col, row int, s string, fg RGB, bold bool) {
	if row < 0 || row >= c.height {
		return
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= c.width {
			return
		}
		if col >= 0 && col+rw <= c.width {
			cell := &c.cells[row*c.width+col]
			cell.Text, cell.TextFg, cell.Bold, cell.Wide = r, fg, bold, false
			if rw == 2 {
				next := &c.cells[row*c.width+col+1]
				next.Text, next.Wide = 0, true
			}
		}
		col += rw
	}
}

// Flush writes the canvas to the screen at offset (ox, oy) without calling Show
func (c *Canvas) Flush(screen tcell.Screen, ox, oy int) {
	bg := RGBToTcell(c.bg)
	base := tcell.StyleDefault.Background(bg)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := &c.cells[y*c.width+x]
			switch {
			case cell.Wide:
				continue
			case cell.Text != 0:
				style := base.Foreground(RGBToTcell(cell.TextFg)).Bold(cell.Bold)
				screen.SetContent(ox+x, oy+y, cell.Text, nil, style)
			case cell.Dots != 0:
				style := base.Foreground(RGBToTcell(cell.Fg))
				screen.SetContent(ox+x, oy+y, rune(brailleBase+int(cell.Dots)), nil, style)
			default:
				screen.SetContent(ox+x, oy+y, ' ', nil, base)
			}
		}
	}
}
