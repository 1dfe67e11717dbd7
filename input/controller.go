package input

import (
	"log"
	"math"

	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/spatial"
)

// Simulation is the slice of physics.Simulation the controller drives
type Simulation interface {
	Node(id string) (physics.Node, bool)
	SetPinned(id string, x, y *float64) error
	Restart(alphaTarget float64)
	Alpha() float64
	SetAlpha(a float64)
	Frozen() bool
}

// Picker resolves world points to nodes
type Picker interface {
	FindNearest(x, y, maxRadius float64) (spatial.Point, bool)
}

// View is the slice of viewport.Viewport the controller drives
type View interface {
	ScreenToWorld(sx, sy float64) (float64, float64)
	ApplyPan(dx, dy float64)
	ApplyZoom(factor, px, py float64)
}

// ControllerConfig holds hit-test radii in world units and the per-step wheel zoom factor
type ControllerConfig struct {
	HitRadius   float64
	HoverRadius float64
	ZoomStep    float64
}

// DefaultControllerConfig returns radii suited to the default node size
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{HitRadius: 4, HoverRadius: 4, ZoomStep: 1.1}
}

// Controller turns pointer events into drag, pan, zoom and hover
// It mutates the simulation only through SetPinned, Restart and SetAlpha
type Controller struct {
	cfg    ControllerConfig
	sim    Simulation
	picker Picker
	view   View

	state        State
	dragID       string
	lastX, lastY float64
	hover        string

	onHover  func(id string)
	onRedraw func()
	onGrab   func(id string)
	onDrop   func(id string)
}

// NewController creates an idle controller
func NewController(cfg ControllerConfig, sim Simulation, picker Picker, view View) *Controller {
	return &Controller{cfg: cfg.normalized(), sim: sim, picker: picker, view: view}
}

func (cfg ControllerConfig) normalized() ControllerConfig {
	def := DefaultControllerConfig()
	if !(cfg.HitRadius > 0) {
		cfg.HitRadius = def.HitRadius
	}
	if !(cfg.HoverRadius > 0) {
		cfg.HoverRadius = cfg.HitRadius
	}
	if !(cfg.ZoomStep > 1) {
		cfg.ZoomStep = def.ZoomStep
	}
	return cfg
}

// SetConfig replaces radii and zoom step; gesture state is kept
func (c *Controller) SetConfig(cfg ControllerConfig) {
	c.cfg = cfg.normalized()
}

// OnHover registers the hover callback; id is "" when the pointer leaves all nodes
func (c *Controller) OnHover(fn func(id string)) { c.onHover = fn }

// OnRedraw registers the callback for view changes that need a repaint without a tick
func (c *Controller) OnRedraw(fn func()) { c.onRedraw = fn }

// OnGrab registers the drag start callback
func (c *Controller) OnGrab(fn func(id string)) { c.onGrab = fn }

// OnDrop registers the drag end callback
func (c *Controller) OnDrop(fn func(id string)) { c.onDrop = fn }

// State returns the interaction state
func (c *Controller) State() State { return c.state }

// Drag returns the node held by the pointer
func (c *Controller) Drag() DragState {
	return DragState{NodeID: c.dragID, Active: c.state == StateDragging}
}

// Hover returns the hovered node id, "" for none
func (c *Controller) Hover() string { return c.hover }

// Handle dispatches one pointer event
func (c *Controller) Handle(ev Event) {
	if math.IsNaN(ev.X) || math.IsNaN(ev.Y) {
		return
	}
	switch ev.Kind {
	case PointerDown:
		c.pointerDown(ev.X, ev.Y)
	case PointerMove:
		c.pointerMove(ev.X, ev.Y)
	case PointerUp:
		c.pointerUp()
	case Wheel:
		c.wheel(ev.X, ev.Y, ev.Delta)
	}
}

func (c *Controller) pointerDown(sx, sy float64) {
	if c.state != StateIdle {
		// Lost a release; finish the previous gesture first
		c.pointerUp()
	}

	wx, wy := c.view.ScreenToWorld(sx, sy)
	hit, ok := c.picker.FindNearest(wx, wy, c.cfg.HitRadius)
	if ok {
		if n, found := c.sim.Node(hit.ID); found && c.grab(n) {
			return
		}
	}

	c.state = StatePanning
	c.lastX, c.lastY = sx, sy
}

// grab pins n where it is and keeps the layout warm while held
func (c *Controller) grab(n physics.Node) bool {
	x, y := n.X, n.Y
	if err := c.sim.SetPinned(n.ID, &x, &y); err != nil {
		log.Printf("input: grab %q: %v", n.ID, err)
		return false
	}
	c.state = StateDragging
	c.dragID = n.ID

	if c.sim.Frozen() {
		c.redraw()
	} else {
		c.sim.Restart(physics.DragAlphaTarget)
	}
	if c.onGrab != nil {
		c.onGrab(n.ID)
	}
	return true
}

func (c *Controller) pointerMove(sx, sy float64) {
	switch c.state {
	case StateDragging:
		wx, wy := c.view.ScreenToWorld(sx, sy)
		if err := c.sim.SetPinned(c.dragID, &wx, &wy); err != nil {
			// Node removed by a topology update mid-drag
			log.Printf("input: drag %q: %v", c.dragID, err)
			c.state, c.dragID = StateIdle, ""
			return
		}
		if c.sim.Frozen() {
			c.redraw()
		}

	case StatePanning:
		dx, dy := sx-c.lastX, sy-c.lastY
		c.lastX, c.lastY = sx, sy
		if dx != 0 || dy != 0 {
			c.view.ApplyPan(dx, dy)
			c.redraw()
		}

	default:
		c.updateHover(sx, sy)
	}
}

func (c *Controller) pointerUp() {
	switch c.state {
	case StateDragging:
		id := c.dragID
		c.state, c.dragID = StateIdle, ""
		if err := c.sim.SetPinned(id, nil, nil); err != nil {
			log.Printf("input: release %q: %v", id, err)
			return
		}
		if c.sim.Frozen() {
			c.redraw()
		} else {
			// A short drag leaves little energy; the layout still relaxes around the drop
			c.sim.SetAlpha(math.Max(c.sim.Alpha(), physics.DropAlpha))
			c.sim.Restart(0)
		}
		if c.onDrop != nil {
			c.onDrop(id)
		}

	case StatePanning:
		c.state = StateIdle
	}
}

func (c *Controller) wheel(sx, sy float64, delta int) {
	if delta == 0 {
		return
	}
	c.view.ApplyZoom(math.Pow(c.cfg.ZoomStep, float64(delta)), sx, sy)
	c.redraw()
}

// ZoomAt applies steps of the wheel zoom around a screen point
func (c *Controller) ZoomAt(sx, sy float64, steps int) {
	c.wheel(sx, sy, steps)
}

// Cancel ends any gesture in progress as if the pointer was released
func (c *Controller) Cancel() {
	c.pointerUp()
}

// RefreshHover re-resolves the hovered node at the last pointer position after nodes moved
func (c *Controller) RefreshHover(sx, sy float64) {
	if c.state == StateIdle {
		c.updateHover(sx, sy)
	}
}

func (c *Controller) updateHover(sx, sy float64) {
	wx, wy := c.view.ScreenToWorld(sx, sy)
	id := ""
	if hit, ok := c.picker.FindNearest(wx, wy, c.cfg.HoverRadius); ok {
		id = hit.ID
	}
	if id == c.hover {
		return
	}
	c.hover = id
	if c.onHover != nil {
		c.onHover(id)
	}
}

func (c *Controller) redraw() {
	if c.onRedraw != nil {
		c.onRedraw()
	}
}
