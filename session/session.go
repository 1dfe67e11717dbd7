// Package session runs the interactive viewer: it owns the simulation, the view and the terminal,
// and serializes every call into them on one loop
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/forcegraph/audio"
	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/graphio"
	"github.com/lixenwraith/forcegraph/input"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/render"
	"github.com/lixenwraith/forcegraph/viewport"
	"github.com/lixenwraith/forcegraph/vmath"
)

// noticeDuration is how long a status notice stays on the bottom row
const noticeDuration = 2 * time.Second

// ErrNoScreen is returned by New without a screen
var ErrNoScreen = errors.New("session: nil screen")

// Options configures a Session; zero values select defaults
type Options struct {
	Config   config.Config
	KeyTable *input.KeyTable
	Cues     audio.Cues
	// Reloads delivers re-read graphs, typically from a graphio.Watcher
	Reloads <-chan graphio.Reload
	// Source names the graph in the status line
	Source string
}

// Session is the interactive viewer
// Not safe for concurrent use; Run drives every method from one goroutine
type Session struct {
	screen tcell.Screen
	cfg    config.Config

	sim      *physics.Simulation
	view     *viewport.Viewport
	ctrl     *input.Controller
	machine  *input.Machine
	picker   *picker
	renderer *render.Renderer
	canvas   *render.Canvas
	cues     audio.Cues
	audible  bool
	reloads  <-chan graphio.Reload
	source   string

	pointerX, pointerY float64
	pointerSeen        bool

	// fitPending fits the view at the next settle; set when the graph arrives without positions
	fitPending bool
	dirty      bool

	notice      string
	noticeUntil time.Time
	now         func() time.Time
}

// New wires a session onto an initialized screen
func New(screen tcell.Screen, opts Options) (*Session, error) {
	if screen == nil {
		return nil, ErrNoScreen
	}
	cfg := opts.Config.Clamp()
	cues := opts.Cues
	if cues == nil {
		cues = audio.NopCues{}
	}

	style := cfg.RenderStyle()
	w, h := screen.Size()
	canvas := render.NewCanvas(w, h)
	dw, dh := canvas.Size()

	s := &Session{
		screen:   screen,
		cfg:      cfg,
		sim:      physics.New(cfg.PhysicsConfig(style.Radius())),
		view:     viewport.New(cfg.Transform(float64(dw), float64(dh))),
		machine:  input.NewMachine(opts.KeyTable, render.DotsX, render.DotsY),
		renderer: render.NewRenderer(style),
		canvas:   canvas,
		cues:     cues,
		audible:  opts.Cues != nil,
		reloads:  opts.Reloads,
		source:   opts.Source,
		now:      time.Now,
		dirty:    true,
	}
	s.picker = newPicker(s.sim)
	s.ctrl = input.NewController(cfg.ControllerConfig(), s.sim, s.picker, s.view)

	s.sim.OnTick(func(physics.TickEvent) {
		s.picker.invalidate()
		s.dirty = true
	})
	s.sim.OnSettle(s.settled)
	s.ctrl.OnHover(func(string) { s.dirty = true })
	s.ctrl.OnRedraw(func() {
		s.picker.invalidate()
		s.dirty = true
	})
	s.ctrl.OnGrab(func(string) { s.cues.Play(audio.CueGrab) })
	s.ctrl.OnDrop(func(string) { s.cues.Play(audio.CueDrop) })
	return s, nil
}

// Load replaces the graph and restarts the layout from alpha 1
// A graph whose nodes all carry positions starts frozen unless freeze_placed is off
func (s *Session) Load(g *graphio.Graph) error {
	nodes, links := g.ToSimulation()
	pc := s.sim.Config()
	pc.Freeze = s.cfg.FreezeOnLoad(g.HasPositions())
	s.sim.SetConfig(pc)
	if err := s.sim.Initialize(nodes, links); err != nil {
		return err
	}
	s.ctrl.Cancel()
	s.picker.invalidate()
	s.dirty = true

	if s.cfg.View.FitOnLoad {
		if g.HasPositions() {
			s.Fit()
		} else {
			s.fitPending = true
		}
	}
	return nil
}

// Simulation exposes the layout for inspection
func (s *Session) Simulation() *physics.Simulation { return s.sim }

// Viewport exposes the view transform
func (s *Session) Viewport() *viewport.Viewport { return s.view }

// Controller exposes the pointer controller
func (s *Session) Controller() *input.Controller { return s.ctrl }

// Renderer exposes the draw pipeline for host overlays
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Run polls the screen and ticks the layout at the configured frame rate until quit or ctx is done
func (s *Session) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.View.FPS))
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if s.HandleEvent(ev) {
				return nil
			}
		case r, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				continue
			}
			s.ApplyReload(r)
		case <-ticker.C:
			s.Frame()
		}
	}
}

// Frame advances the layout one tick and redraws if anything changed
func (s *Session) Frame() {
	if s.sim.Tick() && s.pointerSeen {
		s.ctrl.RefreshHover(s.pointerX, s.pointerY)
	}
	if s.notice != "" && s.now().After(s.noticeUntil) {
		s.notice = ""
		s.dirty = true
	}
	if s.dirty {
		s.draw()
	}
}

// ApplyReload swaps in a re-read graph, keeping positions of surviving nodes
// A failed read keeps the current graph and reports on the status line
func (s *Session) ApplyReload(r graphio.Reload) {
	if r.Err != nil {
		log.Printf("session: reload %s: %v", r.Path, r.Err)
		s.note("reload failed: %v", r.Err)
		return
	}
	nodes, links := r.Graph.ToSimulation()
	if err := s.sim.UpdateTopology(nodes, links); err != nil {
		log.Printf("session: reload %s: %v", r.Path, err)
		s.note("reload failed: %v", err)
		return
	}
	if s.ctrl.Drag().Active {
		if _, ok := s.sim.Node(s.ctrl.Drag().NodeID); !ok {
			s.ctrl.Cancel()
		}
	}
	s.reheat()
	s.picker.invalidate()
	s.note("reloaded %d nodes", s.sim.Len())
}

func (s *Session) settled() {
	s.cues.Play(audio.CueSettle)
	if s.fitPending {
		s.fitPending = false
		s.Fit()
	}
	s.dirty = true
}

// Fit zooms the view onto the node bounds, radii included
func (s *Session) Fit() {
	box, ok := nodeBounds(s.sim.Nodes(), s.renderer.Style())
	if !ok {
		return
	}
	w, h := s.canvas.Size()
	s.view.Fit(box, float64(w), float64(h), s.cfg.View.Padding)
	s.afterViewChange()
}

func nodeBounds(nodes []physics.Node, style render.Style) (vmath.Box, bool) {
	if len(nodes) == 0 {
		return vmath.Box{}, false
	}
	box := vmath.Box{
		Min: vmath.Vec{X: nodes[0].X, Y: nodes[0].Y},
		Max: vmath.Vec{X: nodes[0].X, Y: nodes[0].Y},
	}
	for i := range nodes {
		n := &nodes[i]
		r := style.NodeRadius(n)
		box.Min.X = min(box.Min.X, n.X-r)
		box.Min.Y = min(box.Min.Y, n.Y-r)
		box.Max.X = max(box.Max.X, n.X+r)
		box.Max.Y = max(box.Max.Y, n.Y+r)
	}
	return box, true
}

func (s *Session) afterViewChange() {
	if s.pointerSeen {
		s.ctrl.RefreshHover(s.pointerX, s.pointerY)
	}
	s.dirty = true
}

// reheat gives a changed layout enough energy to respond
func (s *Session) reheat() {
	if s.sim.Frozen() {
		s.dirty = true
		return
	}
	s.sim.SetAlpha(max(s.sim.Alpha(), physics.UnfreezeAlpha))
}

func (s *Session) resize() {
	s.screen.Sync()
	w, h := s.screen.Size()
	s.canvas.Resize(w, h)
	s.dirty = true
}

func (s *Session) note(format string, args ...any) {
	s.notice = fmt.Sprintf(format, args...)
	s.noticeUntil = s.now().Add(noticeDuration)
	s.dirty = true
}

func (s *Session) draw() {
	s.renderer.Draw(s.canvas, render.Frame{
		Nodes:     s.sim.Nodes(),
		Links:     s.sim.Links(),
		Transform: s.view.Transform(),
		Hover:     s.ctrl.Hover(),
		Status:    s.status(),
	})
	s.canvas.Flush(s.screen, 0, 0)
	s.screen.Show()
	s.dirty = false
}

func (s *Session) status() string {
	var b strings.Builder
	if s.source != "" {
		b.WriteString(s.source)
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%d nodes  %d links  %s  alpha %.3f  zoom %.2f",
		s.sim.Len(), len(s.sim.Links()), s.sim.State(), s.sim.Alpha(), s.view.Scale())
	if s.audible && s.cues.Muted() {
		b.WriteString("  muted")
	}
	if s.notice != "" {
		b.WriteString("  | ")
		b.WriteString(s.notice)
	}
	return b.String()
}
