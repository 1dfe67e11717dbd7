package render

// Surface is a drawing target in screen coordinates
// Canvas is the terminal implementation; tests record calls
type Surface interface {
	Size() (width, height int)
	Clear(bg RGB)
	Line(x0, y0, x1, y1, width float64, col RGB, alpha float64)
	Circle(cx, cy, r float64, fill, stroke RGB, strokeWidth float64)
	Text(x, y float64, s string, col RGB, size float64)
}

// Pass draws one layer of a frame
type Pass interface {
	Render(ctx *Context, s Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// PassFunc adapts a function to Pass
type PassFunc func(ctx *Context, s Surface)

// Render implements Pass
func (f PassFunc) Render(ctx *Context, s Surface) { f(ctx, s) }
