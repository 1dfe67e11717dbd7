package render

import (
	"github.com/lixenwraith/forcegraph/viewport"
)

type passEntry struct {
	pass     Pass
	priority Priority
	index    int // registration order for stable sort
}

// Renderer coordinates the draw pipeline: clear, then every pass in priority order
// Links, nodes and labels are registered by NewRenderer; hosts add overlays
type Renderer struct {
	style    Style
	passes   []passEntry
	regCount int
	ctx      Context
}

// NewRenderer creates a renderer with the link, node, label and status passes
func NewRenderer(style Style) *Renderer {
	r := &Renderer{
		style:  style.Normalized(),
		passes: make([]passEntry, 0, 8),
	}
	r.Register(linkPass{}, PriorityLinks)
	r.Register(nodePass{}, PriorityNodes)
	r.Register(labelPass{}, PriorityLabels)
	r.Register(statusPass{}, PriorityOverlay)
	return r
}

// Register adds a pass at the specified priority. Maintains sorted order via insertion sort
func (r *Renderer) Register(p Pass, priority Priority) {
	entry := passEntry{
		pass:     p,
		priority: priority,
		index:    r.regCount,
	}
	r.regCount++

	pos := len(r.passes)
	for i, e := range r.passes {
		if priority < e.priority {
			pos = i
			break
		}
	}

	r.passes = append(r.passes, passEntry{})
	copy(r.passes[pos+1:], r.passes[pos:])
	r.passes[pos] = entry
}

// Style returns the active style
func (r *Renderer) Style() Style {
	return r.style
}

// SetStyle replaces the style; out-of-range values are clamped
func (r *Renderer) SetStyle(s Style) {
	r.style = s.Normalized()
}

// Draw repaints the whole surface for one frame
func (r *Renderer) Draw(s Surface, f Frame) {
	if f.Transform == (viewport.Transform{}) {
		f.Transform = viewport.Identity
	}
	f.Transform = f.Transform.Clamped()
	w, h := s.Size()
	r.ctx.prepare(f, r.style, w, h)

	s.Clear(r.style.Background)
	for _, entry := range r.passes {
		if vt, ok := entry.pass.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.pass.Render(&r.ctx, s)
	}
}
