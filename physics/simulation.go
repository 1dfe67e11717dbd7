package physics

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/forcegraph/vmath"
)

// State is the lifecycle state of a Simulation
type State uint8

const (
	// StateIdle: no tick loop running, positions at rest
	StateIdle State = iota
	// StateRunning: ticks integrate forces while alpha decays
	StateRunning
	// StateFrozen: ticks run but no forces apply; nodes move only through pins
	StateFrozen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// TickEvent is emitted after every step
// Nodes and Links alias simulation state and are valid until the next mutating call
type TickEvent struct {
	Iteration int
	Alpha     float64
	State     State
	Nodes     []Node
	Links     []Link
}

// Simulation owns node and link state and advances the force layout
// Not safe for concurrent use; the owning loop serializes every call
type Simulation struct {
	cfg Config

	nodes []Node
	links []Link
	bound []boundLink
	index map[string]int

	state       State
	alpha       float64
	alphaTarget float64
	iteration   int
	pinDirty    bool

	rng   *vmath.FastRand
	tree  quadtree
	grid  bucketGrid
	radii []float64
	prev  []float64

	onTick   func(TickEvent)
	onSettle func()
}

// New creates an idle simulation with no nodes
func New(cfg Config) *Simulation {
	cfg = cfg.normalized()
	return &Simulation{
		cfg:   cfg,
		index: make(map[string]int),
		rng:   vmath.NewFastRand(cfg.Seed),
	}
}

// Initialize replaces all state with nodes and links
// Unplaced nodes are seeded in a square around the center; alpha restarts at 1
// On error the previous state is left untouched
func (s *Simulation) Initialize(nodes []Node, links []Link) error {
	ns, idx, err := buildNodes(nodes)
	if err != nil {
		return err
	}
	bound, err := s.bindLinks(links, idx)
	if err != nil {
		return err
	}

	s.rng = vmath.NewFastRand(s.cfg.Seed)
	s.nodes, s.index, s.bound = ns, idx, bound
	s.links = append([]Link(nil), links...)
	s.seed(s.nodes, len(s.nodes))

	s.alpha = 1
	s.alphaTarget = 0
	s.iteration = 0
	s.pinDirty = s.cfg.Freeze
	if s.cfg.Freeze {
		s.state = StateFrozen
	} else {
		s.state = StateRunning
	}
	log.Printf("physics: initialized %d nodes, %d links, state %s", len(s.nodes), len(s.links), s.state)
	return nil
}

// UpdateTopology replaces the node and link sets, keeping position, velocity and pin of every node whose id survives
// Alpha and state are unchanged; callers reheat with Restart or SetAlpha
func (s *Simulation) UpdateTopology(nodes []Node, links []Link) error {
	ns, idx, err := buildNodes(nodes)
	if err != nil {
		return err
	}
	bound, err := s.bindLinks(links, idx)
	if err != nil {
		return err
	}

	fresh := ns[:0:0]
	for i := range ns {
		n := &ns[i]
		if j, ok := s.index[n.ID]; ok {
			old := &s.nodes[j]
			n.X, n.Y = old.X, old.Y
			n.VX, n.VY = old.VX, old.VY
			n.FX, n.FY = old.FX, old.FY
			continue
		}
		if !n.Placed() {
			fresh = append(fresh, *n)
		}
	}

	// Seed only the new unplaced nodes, then copy them back
	if len(fresh) > 0 {
		s.seed(fresh, len(ns))
		k := 0
		for i := range ns {
			if _, ok := s.index[ns[i].ID]; ok || ns[i].Placed() {
				continue
			}
			ns[i].X, ns[i].Y = fresh[k].X, fresh[k].Y
			k++
		}
	}

	s.nodes, s.index, s.bound = ns, idx, bound
	s.links = append([]Link(nil), links...)
	s.pinDirty = true
	if len(s.nodes) == 0 && s.state == StateRunning {
		s.state = StateIdle
	}
	return nil
}

// buildNodes copies nodes and indexes them by id
func buildNodes(nodes []Node) ([]Node, map[string]int, error) {
	ns := make([]Node, len(nodes))
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := idx[n.ID]; dup {
			return nil, nil, fmt.Errorf("node %q: %w", n.ID, ErrDuplicateNode)
		}
		idx[n.ID] = i
		n.FX = copyFloat(n.FX)
		n.FY = copyFloat(n.FY)
		if !vmath.Finite(n.VX) || !vmath.Finite(n.VY) {
			n.VX, n.VY = 0, 0
		}
		ns[i] = n
	}
	return ns, idx, nil
}

// bindLinks resolves endpoints and computes spring strength and bias
// Self-loops are kept in the link set but exert no force
func (s *Simulation) bindLinks(links []Link, idx map[string]int) ([]boundLink, error) {
	count := make(map[int]int, len(idx))
	bound := make([]boundLink, 0, len(links))
	for _, l := range links {
		si, ok := idx[l.Source]
		if !ok {
			return nil, fmt.Errorf("link %s->%s source: %w", l.Source, l.Target, ErrUnknownNode)
		}
		ti, ok := idx[l.Target]
		if !ok {
			return nil, fmt.Errorf("link %s->%s target: %w", l.Source, l.Target, ErrUnknownNode)
		}
		if si == ti {
			continue
		}
		count[si]++
		count[ti]++
		bound = append(bound, boundLink{source: si, target: ti, strength: linkWeight(l.Weight)})
	}

	for i := range bound {
		b := &bound[i]
		cs, ct := float64(count[b.source]), float64(count[b.target])
		b.strength = vmath.Pow(b.strength, s.cfg.LinkStrengthExponent) / math.Min(cs, ct)
		b.bias = cs / (cs + ct)
	}
	return bound, nil
}

// rebindStrengths recomputes spring parameters after a config change
func (s *Simulation) rebindStrengths() {
	bound, err := s.bindLinks(s.links, s.index)
	if err != nil {
		// Links were validated against the same index
		panic(err)
	}
	s.bound = bound
}

func linkWeight(w float64) float64 {
	if !(w > 0) || math.IsInf(w, 0) {
		return 1
	}
	return w
}

// seed places every unplaced node in the seeding square
// total is the size of the whole graph and scales the square
func (s *Simulation) seed(nodes []Node, total int) {
	half := s.cfg.InitialSpread
	if !(half > 0) {
		half = math.Max(s.cfg.LinkDistance, s.cfg.LinkDistance*math.Sqrt(float64(total))/2)
	}
	for i := range nodes {
		n := &nodes[i]
		if n.FX != nil {
			n.X = *n.FX
		}
		if n.FY != nil {
			n.Y = *n.FY
		}
		if n.Placed() {
			continue
		}
		if !vmath.Finite(n.X) {
			n.X = s.cfg.CenterX + (s.rng.Float64()*2-1)*half
		}
		if !vmath.Finite(n.Y) {
			n.Y = s.cfg.CenterY + (s.rng.Float64()*2-1)*half
		}
	}
}

// Step advances the layout by one iteration and emits a tick
// An empty node set is a no-op and emits nothing
func (s *Simulation) Step() {
	if len(s.nodes) == 0 {
		return
	}

	if s.state == StateFrozen {
		for i := range s.nodes {
			SnapPinned(&s.nodes[i])
		}
		s.pinDirty = false
		s.iteration++
		s.emit()
		return
	}

	if cap(s.prev) < 2*len(s.nodes) {
		s.prev = make([]float64, 2*len(s.nodes))
	}
	prev := s.prev[:2*len(s.nodes)]
	for i := range s.nodes {
		prev[2*i], prev[2*i+1] = s.nodes[i].X, s.nodes[i].Y
	}

	alpha := s.alpha
	s.applyLinks(alpha)
	s.applyManyBody(alpha)
	s.applyCentering()
	s.applyGravity(alpha)
	s.applyCollision()

	decay := s.cfg.VelocityDecay
	for i := range s.nodes {
		n := &s.nodes[i]
		Integrate(n, decay)
		if Guard(n, prev[2*i], prev[2*i+1]) {
			log.Printf("physics: node %q reset after non-finite step", n.ID)
		}
	}

	s.alpha += (s.target() - s.alpha) * s.cfg.AlphaDecay
	s.pinDirty = false
	s.iteration++
	s.emit()
}

// Tick is the scheduler entry point, returns true if a step ran
// Running: steps, then settles to Idle once alpha and target fall below AlphaMin
// Frozen: steps only after a pin or topology change
func (s *Simulation) Tick() bool {
	if len(s.nodes) == 0 {
		return false
	}
	switch s.state {
	case StateIdle:
		return false
	case StateFrozen:
		if !s.pinDirty {
			return false
		}
		s.Step()
		return true
	}

	s.Step()
	if s.alpha < s.cfg.AlphaMin && s.target() < s.cfg.AlphaMin {
		s.state = StateIdle
		log.Printf("physics: settled after %d iterations", s.iteration)
		if s.onSettle != nil {
			s.onSettle()
		}
	}
	return true
}

func (s *Simulation) target() float64 {
	if s.cfg.Wiggle {
		return math.Max(s.alphaTarget, WiggleAlpha)
	}
	return s.alphaTarget
}

func (s *Simulation) emit() {
	if s.onTick == nil {
		return
	}
	s.onTick(TickEvent{
		Iteration: s.iteration,
		Alpha:     s.alpha,
		State:     s.state,
		Nodes:     s.nodes,
		Links:     s.links,
	})
}

// Restart sets the alpha target and wakes an idle layout
// Drag start uses DragAlphaTarget, drag end 0; a frozen layout stays frozen
func (s *Simulation) Restart(alphaTarget float64) {
	if !vmath.Finite(alphaTarget) || alphaTarget < 0 {
		alphaTarget = 0
	}
	s.alphaTarget = math.Min(alphaTarget, 1)
	if s.state == StateIdle && len(s.nodes) > 0 {
		s.state = StateRunning
	}
}

// SetAlpha sets the current energy, clamped to [0, 1], and wakes an idle layout when above AlphaMin
func (s *Simulation) SetAlpha(a float64) {
	s.alpha = vmath.Clamp(a, 0, 1)
	if s.state == StateIdle && len(s.nodes) > 0 && s.alpha >= s.cfg.AlphaMin {
		s.state = StateRunning
	}
}

// Alpha returns the current energy
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the effective decay target, including Wiggle
func (s *Simulation) AlphaTarget() float64 { return s.target() }

// State returns the lifecycle state
func (s *Simulation) State() State { return s.state }

// Iteration returns the number of steps since Initialize
func (s *Simulation) Iteration() int { return s.iteration }

// Frozen reports whether forces are suspended
func (s *Simulation) Frozen() bool { return s.state == StateFrozen }

// SetPinned pins or releases a node; nil for both axes releases
// Released nodes stay where they were pinned with zero velocity
func (s *Simulation) SetPinned(id string, x, y *float64) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("pin %q: %w", id, ErrUnknownNode)
	}
	n := &s.nodes[i]
	if x == nil && y == nil {
		SnapPinned(n)
		n.FX, n.FY = nil, nil
		Stop(n)
		s.pinDirty = true
		return nil
	}

	n.FX = copyFloat(x)
	n.FY = copyFloat(y)
	SnapPinned(n)
	s.pinDirty = true
	return nil
}

// Pin holds a node at (x, y)
func (s *Simulation) Pin(id string, x, y float64) error {
	return s.SetPinned(id, &x, &y)
}

// Release frees a pinned node
func (s *Simulation) Release(id string) error {
	return s.SetPinned(id, nil, nil)
}

// SetConfig replaces the configuration between steps
// Entering Freeze stops all motion; leaving it reheats to at least UnfreezeAlpha
func (s *Simulation) SetConfig(cfg Config) {
	cfg = cfg.normalized()
	old := s.cfg
	s.cfg = cfg

	if old.LinkStrengthExponent != cfg.LinkStrengthExponent {
		s.rebindStrengths()
	}
	if len(s.nodes) == 0 {
		return
	}

	switch {
	case cfg.Freeze && s.state != StateFrozen:
		for i := range s.nodes {
			Stop(&s.nodes[i])
		}
		s.state = StateFrozen
		s.pinDirty = true
	case !cfg.Freeze && s.state == StateFrozen:
		s.state = StateRunning
		s.alpha = math.Max(s.alpha, UnfreezeAlpha)
	case cfg.Wiggle && s.state == StateIdle:
		s.state = StateRunning
	}
}

// Config returns the active configuration
func (s *Simulation) Config() Config { return s.cfg }

// Nodes returns the live node slice; callers must not mutate it
func (s *Simulation) Nodes() []Node { return s.nodes }

// Links returns the live link slice; callers must not mutate it
func (s *Simulation) Links() []Link { return s.links }

// Len returns the node count
func (s *Simulation) Len() int { return len(s.nodes) }

// Node returns a copy of the node with the given id
func (s *Simulation) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	n := s.nodes[i]
	n.FX, n.FY = copyFloat(n.FX), copyFloat(n.FY)
	return n, true
}

// OnTick registers the tick callback, replacing any previous one
func (s *Simulation) OnTick(fn func(TickEvent)) { s.onTick = fn }

// OnSettle registers the callback fired when a running layout goes idle
func (s *Simulation) OnSettle(fn func()) { s.onSettle = fn }

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
