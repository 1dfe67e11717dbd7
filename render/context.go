package render

import (
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/viewport"
)

// Frame is the scene handed to Draw; slices are read, never mutated
type Frame struct {
	Nodes     []physics.Node
	Links     []physics.Link
	Transform viewport.Transform
	Hover     string // hovered node id, "" for none
	Status    string // optional one-line overlay
}

// Context provides frame state for passes, rebuilt by every Draw
// Geometry slices are parallel to Frame.Nodes and already in screen space
type Context struct {
	Frame
	Style  Style
	Width  int
	Height int

	ScreenX []float64
	ScreenY []float64
	Radius  []float64

	// MaxWeight is the heaviest link weight in the frame
	MaxWeight float64

	index   map[string]int
	palette map[string]RGB
}

// NodeIndex returns the position of id in Frame.Nodes
func (ctx *Context) NodeIndex(id string) (int, bool) {
	i, ok := ctx.index[id]
	return i, ok
}

// Fill returns the resolved fill of node i
// Empty or unparseable colors fall back to the style fill
func (ctx *Context) Fill(i int) RGB {
	c := ctx.Nodes[i].Color
	if c == "" {
		return ctx.Style.NodeFill
	}
	if rgb, ok := ctx.palette[c]; ok {
		return rgb
	}
	rgb, ok := ParseColor(c)
	if !ok {
		rgb = ctx.Style.NodeFill
	}
	ctx.palette[c] = rgb
	return rgb
}

// prepare resets ctx for f, reusing slice and map storage
func (ctx *Context) prepare(f Frame, style Style, width, height int) {
	ctx.Frame = f
	ctx.Style = style
	ctx.Width, ctx.Height = width, height

	n := len(f.Nodes)
	ctx.ScreenX = grow(ctx.ScreenX, n)
	ctx.ScreenY = grow(ctx.ScreenY, n)
	ctx.Radius = grow(ctx.Radius, n)
	if ctx.index == nil {
		ctx.index = make(map[string]int, n)
	}
	clear(ctx.index)
	if ctx.palette == nil {
		ctx.palette = make(map[string]RGB)
	}

	k := f.Transform.K
	for i := range f.Nodes {
		node := &f.Nodes[i]
		ctx.index[node.ID] = i
		ctx.ScreenX[i], ctx.ScreenY[i] = f.Transform.Apply(node.X, node.Y)
		ctx.Radius[i] = style.NodeRadius(node) * k
	}

	ctx.MaxWeight = 0
	for _, l := range f.Links {
		ctx.MaxWeight = max(ctx.MaxWeight, l.Weight)
	}
}

func grow(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
