package graphio

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/forcegraph/physics"
)

// goldenAngle spaces group hues so neighbouring groups never share a color
const goldenAngle = 137.50776405003785

// ToSimulation converts g into simulation nodes and links
// Missing, non-positive and non-finite weights count as 1. Weights and sizes are divided by their
// maximum, degree is the weighted degree over its maximum, and nodes without a color take a hue
// from their group
func (g *Graph) ToSimulation() ([]physics.Node, []physics.Link) {
	links := make([]physics.Link, len(g.Links))
	maxWeight := 0.0
	for i, l := range g.Links {
		w := 1.0
		if l.Weight != nil && *l.Weight > 0 && !math.IsInf(*l.Weight, 1) {
			w = *l.Weight
		}
		links[i] = physics.Link{Source: string(l.Source), Target: string(l.Target), Weight: w}
		maxWeight = math.Max(maxWeight, w)
	}
	for i := range links {
		links[i].Weight /= maxWeight
	}

	degree := make(map[string]float64, len(g.Nodes))
	maxDegree := 0.0
	for _, l := range links {
		degree[l.Source] += l.Weight
		degree[l.Target] += l.Weight
	}
	for _, d := range degree {
		maxDegree = math.Max(maxDegree, d)
	}

	maxSize := math.Inf(-1)
	for i := range g.Nodes {
		if s := g.Nodes[i].Size; s != nil {
			maxSize = math.Max(maxSize, *s)
		}
	}

	palette := g.groupPalette()
	nodes := make([]physics.Node, len(g.Nodes))
	for i := range g.Nodes {
		d := &g.Nodes[i]
		n := physics.NewNode(string(d.ID))
		if d.X != nil && d.Y != nil {
			n = n.At(*d.X, *d.Y)
		}
		if d.Size != nil && maxSize > 0 && !math.IsInf(maxSize, 1) {
			n.Size = *d.Size / maxSize
		}
		if maxDegree > 0 {
			n.Degree = degree[n.ID] / maxDegree
		} else {
			n.Degree = 0
		}
		n.Color = d.Color
		if d.Group != nil {
			n.Group = string(*d.Group)
			if n.Color == "" {
				n.Color = palette[n.Group]
			}
		}
		nodes[i] = n
	}
	return nodes, links
}

// groupPalette assigns colors to groups in order of first appearance
// Groups are ignored once any node carries an explicit color
func (g *Graph) groupPalette() map[string]string {
	for i := range g.Nodes {
		if g.Nodes[i].Color != "" {
			return nil
		}
	}
	palette := make(map[string]string)
	for i := range g.Nodes {
		grp := g.Nodes[i].Group
		if grp == nil {
			continue
		}
		if _, ok := palette[string(*grp)]; ok {
			continue
		}
		hue := math.Mod(float64(len(palette))*goldenAngle, 360)
		palette[string(*grp)] = colorful.Hcl(hue, 0.55, 0.65).Clamped().Hex()
	}
	return palette
}
