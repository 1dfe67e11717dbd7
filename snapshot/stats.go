package snapshot

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/forcegraph/vmath"
)

// Stats summarizes a layout in world units
type Stats struct {
	Nodes int `json:"nodes" yaml:"nodes"`
	Links int `json:"links" yaml:"links"`

	MeanLinkLength   float64 `json:"mean_link_length" yaml:"mean_link_length"`
	StdDevLinkLength float64 `json:"stddev_link_length" yaml:"stddev_link_length"`
	MinLinkLength    float64 `json:"min_link_length" yaml:"min_link_length"`
	MaxLinkLength    float64 `json:"max_link_length" yaml:"max_link_length"`

	// Bounds of node centers; zero when there are no nodes
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// ComputeStats measures link lengths and node bounds of s
// Link lengths weight each link by its weight; the deviation is zero below two links
func ComputeStats(s Snapshot) Stats {
	st := Stats{Nodes: len(s.Nodes), Links: len(s.Links)}

	pos := s.Positions()
	pts := make([]vmath.Vec, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		pts = append(pts, vmath.Vec{X: n.X, Y: n.Y})
	}
	if b, ok := vmath.Bounds(pts); ok {
		st.MinX, st.MinY, st.MaxX, st.MaxY = b.Min.X, b.Min.Y, b.Max.X, b.Max.Y
	}

	lengths := make([]float64, 0, len(s.Links))
	weights := make([]float64, 0, len(s.Links))
	for _, l := range s.Links {
		a, okA := pos[l.Source]
		b, okB := pos[l.Target]
		if !okA || !okB {
			continue
		}
		d := vmath.Distance(vmath.Vec{X: a[0], Y: a[1]}, vmath.Vec{X: b[0], Y: b[1]})
		if !vmath.Finite(d) {
			continue
		}
		lengths = append(lengths, d)
		weights = append(weights, vmath.AtLeastEpsilon(l.Weight))
	}
	if len(lengths) == 0 {
		return st
	}

	st.MinLinkLength, st.MaxLinkLength = math.Inf(1), math.Inf(-1)
	for _, d := range lengths {
		st.MinLinkLength = math.Min(st.MinLinkLength, d)
		st.MaxLinkLength = math.Max(st.MaxLinkLength, d)
	}
	if len(lengths) == 1 {
		st.MeanLinkLength = lengths[0]
		return st
	}
	mean, std := stat.MeanStdDev(lengths, weights)
	st.MeanLinkLength = mean
	if vmath.Finite(std) {
		st.StdDevLinkLength = std
	}
	return st
}
