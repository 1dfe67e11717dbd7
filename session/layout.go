package session

import (
	"errors"
	"log"

	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/graphio"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/render"
	"github.com/lixenwraith/forcegraph/snapshot"
	"github.com/lixenwraith/forcegraph/viewport"
)

// DefaultMaxSteps bounds a headless run; a default layout settles in about 300 steps
const DefaultMaxSteps = 5000

// ErrNotSettled is returned with the last snapshot when a headless run hits its step limit
var ErrNotSettled = errors.New("layout did not settle")

// LayoutOptions configures a headless run; Width and Height are the drawing size in terminal cells
type LayoutOptions struct {
	Width, Height int
	MaxSteps      int
}

// Layout runs the simulation without a screen until it settles and captures the result
// A wiggling layout never settles and always ends at MaxSteps
// A graph whose nodes all carry positions starts frozen and keeps them
func Layout(cfg config.Config, g *graphio.Graph, opts LayoutOptions) (snapshot.Snapshot, error) {
	cfg = cfg.Clamp()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}

	style := cfg.RenderStyle()
	pc := cfg.PhysicsConfig(style.Radius())
	pc.Freeze = cfg.FreezeOnLoad(g.HasPositions())
	sim := physics.New(pc)
	nodes, links := g.ToSimulation()
	if err := sim.Initialize(nodes, links); err != nil {
		return snapshot.Snapshot{}, err
	}

	steps := 0
	for steps < opts.MaxSteps && sim.Tick() {
		steps++
	}
	var err error
	if sim.State() == physics.StateRunning {
		err = ErrNotSettled
	}
	log.Printf("session: headless layout stopped after %d steps, alpha %.4f", steps, sim.Alpha())

	w, h := opts.Width*render.DotsX, opts.Height*render.DotsY
	view := viewport.New(cfg.Transform(float64(w), float64(h)))
	if cfg.View.FitOnLoad {
		if box, ok := nodeBounds(sim.Nodes(), style); ok {
			view.Fit(box, float64(w), float64(h), cfg.View.Padding)
		}
	}

	return snapshot.Build(snapshot.Scene{
		Nodes:     sim.Nodes(),
		Links:     sim.Links(),
		Transform: view.Transform(),
		Style:     style,
		Width:     w,
		Height:    h,
		Iteration: sim.Iteration(),
	}), err
}
