package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDotBrailleBits(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetDot(0, 0, RGBWhite, 1)
	c.SetDot(1, 3, RGBWhite, 1)
	c.SetDot(2, 1, RGBWhite, 1) // second cell

	cell, ok := c.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint8(0x01|0x80), cell.Dots)
	assert.Equal(t, RGBWhite, cell.Fg)

	cell, _ = c.Cell(1, 0)
	assert.Equal(t, uint8(0x02), cell.Dots)

	// Out of range dots are ignored
	c.SetDot(-1, 0, RGBWhite, 1)
	c.SetDot(4, 0, RGBWhite, 1)
	c.SetDot(0, 4, RGBWhite, 1)
	_, ok = c.Cell(2, 0)
	assert.False(t, ok)

	assert.True(t, c.Dot(1, 3))
	assert.False(t, c.Dot(1, 2))
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(5, 3)
	c.SetDot(3, 3, RGBWhite, 1)
	c.TextAt(1, 1, "x", RGBWhite, false)

	bg := RGB{1, 2, 3}
	c.Clear(bg)
	assert.Equal(t, bg, c.Background())
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			cell, _ := c.Cell(x, y)
			assert.Zero(t, cell.Dots)
			assert.Zero(t, cell.Text)
		}
	}

	c.Resize(2, 2)
	w, h := c.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, bg, c.Background())
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2) // 8x8 dots

	c.Line(0, 1, 7, 1, 1, RGBWhite, 1)
	for x := 0; x < 8; x++ {
		assert.True(t, c.Dot(x, 1), "dot %d", x)
		assert.False(t, c.Dot(x, 0), "dot %d", x)
	}

	// Clipped at both edges
	c.Clear(RGBBlack)
	c.Line(-10, 2, 20, 2, 1, RGBWhite, 1)
	for x := 0; x < 8; x++ {
		assert.True(t, c.Dot(x, 2), "dot %d", x)
	}

	// Entirely outside
	c.Clear(RGBBlack)
	c.Line(-10, -5, 20, -5, 1, RGBWhite, 1)
	c.Line(0, 0, 7, 7, 1, RGBWhite, 0)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			cell, _ := c.Cell(x, y)
			assert.Zero(t, cell.Dots)
		}
	}

	// Thin lines fade rather than vanish
	c.Line(0, 5, 7, 5, 0.5, RGBWhite, 1)
	assert.True(t, c.Dot(3, 5))
	cell, _ := c.Cell(1, 1)
	assert.NotEqual(t, RGBWhite, cell.Fg)

	// Thick lines widen perpendicular to the direction
	c.Clear(RGBBlack)
	c.Line(0, 4, 7, 4, 3, RGBWhite, 1)
	assert.True(t, c.Dot(2, 3))
	assert.True(t, c.Dot(2, 4))
	assert.True(t, c.Dot(2, 5))
	assert.False(t, c.Dot(2, 7))
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(4, 2)
	fill := RGB{0, 200, 0}

	c.Circle(4, 4, 2, fill, RGBWhite, 0)
	assert.True(t, c.Dot(4, 4))
	assert.True(t, c.Dot(3, 3))
	assert.False(t, c.Dot(0, 0))
	assert.False(t, c.Dot(7, 7))

	// Sub-dot radius lights the center
	c.Clear(RGBBlack)
	c.Circle(6.2, 1.7, 0.1, fill, RGBWhite, 0)
	assert.True(t, c.Dot(6, 1))

	// Off-canvas and non-finite circles draw nothing
	c.Clear(RGBBlack)
	c.Circle(-50, -50, 3, fill, RGBWhite, 1)
	c.Circle(4, 4, math.NaN(), fill, RGBWhite, 1)
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			assert.False(t, c.Dot(x, y))
		}
	}

	// Stroke ring colors the rim
	c.Clear(RGBBlack)
	c.Circle(4, 4, 3, fill, RGBWhite, 1)
	rim, _ := c.Cell(0, 1)  // dots x 0..1, y 4..7
	core, _ := c.Cell(1, 1) // contains dot (3,4)
	assert.NotZero(t, rim.Dots)
	assert.NotZero(t, core.Dots)
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(4, 2)

	c.TextAt(0, 0, "世a", RGBWhite, true)
	cell, _ := c.Cell(0, 0)
	assert.Equal(t, '世', cell.Text)
	assert.True(t, cell.Bold)
	cell, _ = c.Cell(1, 0)
	assert.True(t, cell.Wide)
	cell, _ = c.Cell(2, 0)
	assert.Equal(t, 'a', cell.Text)

	// Overflow dropped, wide rune that does not fit skipped
	c.TextAt(2, 1, "ab世", RGBWhite, false)
	cell, _ = c.Cell(3, 1)
	assert.Equal(t, 'b', cell.Text)

	// Dot-coordinate Text picks the containing cell and bold by size
	c.Clear(RGBBlack)
	c.Text(5, 6, "z", RGBWhite, 18)
	cell, _ = c.Cell(2, 1)
	assert.Equal(t, 'z', cell.Text)
	assert.True(t, cell.Bold)

	c.Text(0, -1, "q", RGBWhite, 10)
	c.Text(0, 100, "q", RGBWhite, 10)
	for x := 0; x < 4; x++ {
		cell, _ = c.Cell(x, 0)
		assert.Zero(t, cell.Text)
	}
}

func TestCanvasFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(4, 2)

	c := NewCanvas(4, 2)
	c.Clear(RGBBlack)
	c.SetDot(2, 4, RGBWhite, 1) // cell (1,1), bit 0x01
	c.SetDot(3, 7, RGBWhite, 1) // cell (1,1), bit 0x80
	c.TextAt(0, 0, "世", RGB{255, 0, 0}, false)
	c.TextAt(3, 0, "k", RGBWhite, true)
	c.Flush(screen, 0, 0)

	r, _, style, _ := screen.GetContent(1, 1)
	assert.Equal(t, rune(0x2800|0x81), r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, RGBWhite, TcellToRGB(fg, RGBBlack))
	assert.Equal(t, RGBBlack, TcellToRGB(bg, RGBWhite))

	r, _, style, _ = screen.GetContent(0, 0)
	assert.Equal(t, '世', r)
	fg, _, _ = style.Decompose()
	assert.Equal(t, RGB{255, 0, 0}, TcellToRGB(fg, RGBBlack))

	r, _, style, _ = screen.GetContent(3, 0)
	assert.Equal(t, 'k', r)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)

	r, _, _, _ = screen.GetContent(0, 1)
	assert.Equal(t, ' ', r)
}

func TestRendererOnCanvas(t *testing.T) {
	c := NewCanvas(20, 10)
	r := NewRenderer(DefaultStyle())
	f := sampleFrame()
	f.Status = "ok"
	r.Draw(c, f)

	// Node A at screen (5,5) in dots
	assert.True(t, c.Dot(5, 5))
	cell, _ := c.Cell(0, 9)
	assert.Equal(t, 'o', cell.Text)
}
