package render

import (
	"math"

	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/vmath"
)

// Style holds every visual parameter; sizes are world units and scale with zoom
type Style struct {
	Background RGB
	NodeFill   RGB
	NodeStroke RGB
	LinkColor  RGB
	LabelColor RGB
	HoverColor RGB

	NodeStrokeWidth  float64
	NodeSize         float64
	NodeSizeExponent float64
	ScaleByDegree    bool

	LinkWidth         float64
	LinkWidthExponent float64
	LinkAlpha         float64

	ShowLabels   bool
	LabelMinSize float64
	LabelMaxSize float64

	// Links outside [Min, Max] percent of the heaviest weight are hidden
	MinWeightPercent float64
	MaxWeightPercent float64
}

// DefaultStyle returns the dark-terminal theme
func DefaultStyle() Style {
	return Style{
		Background: RGB{26, 27, 38},
		NodeFill:   MustParseColor("#16a085"),
		NodeStroke: MustParseColor("#000000"),
		LinkColor:  MustParseColor("#7c7c7c"),
		LabelColor: MustParseColor("#c0caf5"),
		HoverColor: MustParseColor("#ffa500"),

		NodeStrokeWidth:  0.5,
		NodeSize:         4,
		NodeSizeExponent: 0.5,

		LinkWidth:         1,
		LinkWidthExponent: 0.5,
		LinkAlpha:         0.5,

		LabelMinSize: 10,
		LabelMaxSize: 20,

		MinWeightPercent: 0,
		MaxWeightPercent: 100,
	}
}

// Normalized returns s with out-of-range values clamped silently
func (s Style) Normalized() Style {
	s.NodeStrokeWidth = vmath.AtLeastEpsilon(s.NodeStrokeWidth)
	if !(s.NodeSize > 0) {
		s.NodeSize = DefaultStyle().NodeSize
	}
	if !vmath.Finite(s.NodeSizeExponent) {
		s.NodeSizeExponent = 0
	}
	s.LinkWidth = vmath.AtLeastEpsilon(s.LinkWidth)
	if !vmath.Finite(s.LinkWidthExponent) {
		s.LinkWidthExponent = 0
	}
	s.LinkAlpha = vmath.Clamp(s.LinkAlpha, 0, 1)
	if !(s.LabelMinSize > 0) {
		s.LabelMinSize = 1
	}
	if !(s.LabelMaxSize >= s.LabelMinSize) {
		s.LabelMaxSize = s.LabelMinSize
	}
	s.MinWeightPercent = vmath.Clamp(s.MinWeightPercent, 0, 100)
	if math.IsNaN(s.MaxWeightPercent) {
		s.MaxWeightPercent = 100
	}
	s.MaxWeightPercent = vmath.Clamp(s.MaxWeightPercent, s.MinWeightPercent, 100)
	return s
}

// LinkWidthFor returns weight^LinkWidthExponent * LinkWidth, never below Epsilon
func (s *Style) LinkWidthFor(weight float64) float64 {
	w := vmath.Pow(weight, s.LinkWidthExponent) * s.LinkWidth
	if !vmath.Finite(w) {
		return vmath.Epsilon
	}
	return vmath.AtLeastEpsilon(w)
}

// NodeRadius returns NodeSize * attr^NodeSizeExponent, attr being size or degree
func (s *Style) NodeRadius(n *physics.Node) float64 {
	attr := n.Size
	if s.ScaleByDegree {
		attr = n.Degree
	}
	r := s.NodeSize * vmath.Pow(attr, s.NodeSizeExponent)
	if !vmath.Finite(r) {
		return vmath.Epsilon
	}
	return vmath.AtLeastEpsilon(r)
}

// LabelSize clips twice the screen radius to the label size range
func (s *Style) LabelSize(screenRadius float64) float64 {
	return vmath.Clamp(2*screenRadius, s.LabelMinSize, s.LabelMaxSize)
}

// LinkVisible reports whether weight lies in the percent band relative to maxWeight
func (s *Style) LinkVisible(weight, maxWeight float64) bool {
	if s.MinWeightPercent <= 0 && s.MaxWeightPercent >= 100 {
		return true
	}
	if !(maxWeight > 0) {
		return true
	}
	p := 100 * weight / maxWeight
	return p >= s.MinWeightPercent-vmath.Epsilon && p <= s.MaxWeightPercent+vmath.Epsilon
}

// Radius returns a physics.RadiusFunc matching the drawn node size, for collision
func (s Style) Radius() physics.RadiusFunc {
	return func(n *physics.Node) float64 {
		return s.NodeRadius(n)
	}
}
