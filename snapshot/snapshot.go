// Package snapshot captures the drawn state of a layout for export
// The node and link fields follow the netwulf stylized-network layout so existing tooling can replot it
package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/render"
	"github.com/lixenwraith/forcegraph/viewport"
)

// Node is one drawn node; X/Y are world, ScreenX/ScreenY are canvas dots
type Node struct {
	ID      string  `json:"id" yaml:"id"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	ScreenX float64 `json:"x_canvas" yaml:"x_canvas"`
	ScreenY float64 `json:"y_canvas" yaml:"y_canvas"`
	Radius  float64 `json:"radius" yaml:"radius"`
	Color   string  `json:"color" yaml:"color"`
	Pinned  bool    `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// Link is one drawn link with its rendered width
type Link struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Width  float64 `json:"width" yaml:"width"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Transform is the viewport at capture time
type Transform struct {
	K float64 `json:"k" yaml:"k"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Snapshot is the exported scene
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Captured  time.Time `json:"captured" yaml:"captured"`
	Iteration int       `json:"iteration" yaml:"iteration"`

	XLim [2]float64 `json:"xlim" yaml:"xlim,flow"`
	YLim [2]float64 `json:"ylim" yaml:"ylim,flow"`

	LinkColor       string  `json:"linkColor" yaml:"link_color"`
	LinkAlpha       float64 `json:"linkAlpha" yaml:"link_alpha"`
	NodeStrokeColor string  `json:"nodeStrokeColor" yaml:"node_stroke_color"`
	NodeStrokeWidth float64 `json:"nodeStrokeWidth" yaml:"node_stroke_width"`

	Transform Transform `json:"transform" yaml:"transform"`
	Links     []Link    `json:"links" yaml:"links"`
	Nodes     []Node    `json:"nodes" yaml:"nodes"`
}

// Scene is everything Build reads; Width/Height are the canvas size in dots
type Scene struct {
	Nodes     []physics.Node
	Links     []physics.Link
	Transform viewport.Transform
	Style     render.Style
	Width     int
	Height    int
	Iteration int
}

// Build captures the scene the renderer would draw
// Links to unknown nodes, self-loops and links outside the weight band are left out
func Build(sc Scene) Snapshot {
	st := sc.Style.Normalized()
	t := sc.Transform
	if t == (viewport.Transform{}) {
		t = viewport.Identity
	}
	t = t.Clamped()

	s := Snapshot{
		ID:              uuid.NewString(),
		Captured:        time.Now().UTC(),
		Iteration:       sc.Iteration,
		XLim:            [2]float64{0, float64(sc.Width)},
		YLim:            [2]float64{0, float64(sc.Height)},
		LinkColor:       st.LinkColor.Hex(),
		LinkAlpha:       st.LinkAlpha,
		NodeStrokeColor: st.NodeStroke.Hex(),
		NodeStrokeWidth: st.NodeStrokeWidth,
		Transform:       Transform{K: t.K, X: t.X, Y: t.Y},
		Links:           make([]Link, 0, len(sc.Links)),
		Nodes:           make([]Node, 0, len(sc.Nodes)),
	}

	known := make(map[string]struct{}, len(sc.Nodes))
	for i := range sc.Nodes {
		n := &sc.Nodes[i]
		known[n.ID] = struct{}{}
		sx, sy := t.Apply(n.X, n.Y)
		fill := st.NodeFill
		if c, ok := render.ParseColor(n.Color); ok {
			fill = c
		}
		s.Nodes = append(s.Nodes, Node{
			ID: n.ID, X: n.X, Y: n.Y,
			ScreenX: sx, ScreenY: sy,
			Radius: st.NodeRadius(n),
			Color:  fill.Hex(),
			Pinned: n.Pinned(),
		})
	}

	maxWeight := 0.0
	for _, l := range sc.Links {
		maxWeight = max(maxWeight, l.Weight)
	}
	for _, l := range sc.Links {
		_, okS := known[l.Source]
		_, okT := known[l.Target]
		if !okS || !okT || l.Source == l.Target {
			continue
		}
		if !st.LinkVisible(l.Weight, maxWeight) {
			continue
		}
		s.Links = append(s.Links, Link{
			Source: l.Source,
			Target: l.Target,
			Width:  st.LinkWidthFor(l.Weight),
			Weight: l.Weight,
		})
	}

	return s
}

// Positions returns world positions by node id
func (s *Snapshot) Positions() map[string][2]float64 {
	out := make(map[string][2]float64, len(s.Nodes))
	for _, n := range s.Nodes {
		out[n.ID] = [2]float64{n.X, n.Y}
	}
	return out
}
