package session

import (
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/spatial"
)

// picker answers hit-tests from a spatial index rebuilt only when positions changed since the last query
type picker struct {
	sim    *physics.Simulation
	index  *spatial.Index
	points []spatial.Point
	stale  bool
}

func newPicker(sim *physics.Simulation) *picker {
	return &picker{sim: sim, index: spatial.New(), stale: true}
}

func (p *picker) invalidate() { p.stale = true }

// FindNearest implements input.Picker
func (p *picker) FindNearest(x, y, maxRadius float64) (spatial.Point, bool) {
	if p.stale {
		p.rebuild()
	}
	return p.index.FindNearest(x, y, maxRadius)
}

func (p *picker) rebuild() {
	nodes := p.sim.Nodes()
	p.points = p.points[:0]
	for i := range nodes {
		p.points = append(p.points, spatial.Point{ID: nodes[i].ID, X: nodes[i].X, Y: nodes[i].Y})
	}
	p.index.Build(p.points)
	p.stale = false
}
