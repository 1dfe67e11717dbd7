package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/forcegraph/vmath"
)

func chain() ([]Node, []Link) {
	nodes := []Node{NewNode("A"), NewNode("B"), NewNode("C")}
	links := []Link{
		{Source: "A", Target: "B", Weight: 1.0},
		{Source: "B", Target: "C", Weight: 0.5},
	}
	return nodes, links
}

func dist(a, b Node) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestStepEmptyIsNoop(t *testing.T) {
	sim := New(DefaultConfig())
	ticks := 0
	sim.OnTick(func(TickEvent) { ticks++ })

	sim.Step()
	assert.False(t, sim.Tick())
	require.NoError(t, sim.Initialize(nil, nil))
	sim.Step()
	assert.False(t, sim.Tick())

	assert.Zero(t, ticks)
	assert.Zero(t, sim.Iteration())
}

func TestInitializeSeedsUnplacedNodes(t *testing.T) {
	sim := New(DefaultConfig())
	nodes, links := chain()
	nodes[1] = nodes[1].At(3, 4)
	require.NoError(t, sim.Initialize(nodes, links))

	assert.Equal(t, StateRunning, sim.State())
	assert.Equal(t, 1.0, sim.Alpha())

	b, ok := sim.Node("B")
	require.True(t, ok)
	assert.Equal(t, 3.0, b.X)
	assert.Equal(t, 4.0, b.Y)

	for _, n := range sim.Nodes() {
		assert.True(t, n.Placed(), "node %s unplaced", n.ID)
		assert.LessOrEqual(t, math.Abs(n.X), 30.0)
		assert.LessOrEqual(t, math.Abs(n.Y), 30.0)
	}

	// Same seed, same layout
	other := New(DefaultConfig())
	require.NoError(t, other.Initialize(nodes, links))
	for i := range sim.Nodes() {
		assert.Equal(t, sim.Nodes()[i].X, other.Nodes()[i].X)
		assert.Equal(t, sim.Nodes()[i].Y, other.Nodes()[i].Y)
	}
}

func TestInitializeRejectsBadTopology(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		links []Link
		want  error
	}{
		{
			name:  "unknown source",
			nodes: []Node{NewNode("A")},
			links: []Link{{Source: "Z", Target: "A", Weight: 1}},
			want:  ErrUnknownNode,
		},
		{
			name:  "unknown target",
			nodes: []Node{NewNode("A")},
			links: []Link{{Source: "A", Target: "Z", Weight: 1}},
			want:  ErrUnknownNode,
		},
		{
			name:  "duplicate id",
			nodes: []Node{NewNode("A"), NewNode("A")},
			want:  ErrDuplicateNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := New(DefaultConfig())
			err := sim.Initialize(tt.nodes, tt.links)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, sim.Len())
			assert.Equal(t, StateIdle, sim.State())

			require.ErrorIs(t, sim.UpdateTopology(tt.nodes, tt.links), tt.want)
		})
	}
}

// A-B (1.0), B-C (0.5) settles near the link distance with finite coordinates throughout
func TestChainSettles(t *testing.T) {
	cfg := DefaultConfig()
	sim := New(cfg)
	nodes, links := chain()
	require.NoError(t, sim.Initialize(nodes, links))

	settled := false
	sim.OnSettle(func() { settled = true })
	sim.OnTick(func(ev TickEvent) {
		for _, n := range ev.Nodes {
			if !vmath.Finite(n.X) || !vmath.Finite(n.Y) {
				t.Fatalf("iteration %d: node %s at (%v, %v)", ev.Iteration, n.ID, n.X, n.Y)
			}
		}
	})

	for i := 0; i < 1000 && sim.State() == StateRunning; i++ {
		sim.Tick()
	}

	require.True(t, settled)
	assert.Equal(t, StateIdle, sim.State())
	assert.Less(t, sim.Alpha(), 0.01)

	a, _ := sim.Node("A")
	b, _ := sim.Node("B")
	c, _ := sim.Node("C")
	d := cfg.LinkDistance
	assert.InDelta(t, d, dist(a, b), d/2)
	assert.InDelta(t, d, dist(b, c), d/2)
	assert.Greater(t, dist(a, c), dist(a, b))
}

func TestPinnedNodeStaysExact(t *testing.T) {
	sim := New(DefaultConfig())
	nodes, links := chain()
	require.NoError(t, sim.Initialize(nodes, links))

	x, y := 5.25, -7.5
	require.NoError(t, sim.SetPinned("A", &x, &y))
	// Caller-owned values are copied
	x, y = 100, 100

	for i := 0; i < 50; i++ {
		sim.Step()
		a, _ := sim.Node("A")
		require.Equal(t, 5.25, a.X)
		require.Equal(t, -7.5, a.Y)
		require.Zero(t, a.VX)
		require.Zero(t, a.VY)
	}

	require.NoError(t, sim.Release("A"))
	a, _ := sim.Node("A")
	assert.False(t, a.Pinned())
	assert.Equal(t, 5.25, a.X)

	sim.SetAlpha(1)
	sim.Step()
	a, _ = sim.Node("A")
	assert.NotEqual(t, 5.25, a.X, "released node should move again")
}

func TestSetPinnedUnknownNode(t *testing.T) {
	sim := New(DefaultConfig())
	require.ErrorIs(t, sim.Pin("nope", 0, 0), ErrUnknownNode)
}

func TestCoincidentNodesSeparate(t *testing.T) {
	sim := New(DefaultConfig())
	nodes := make([]Node, 10)
	for i := range nodes {
		nodes[i] = NewNode(string(rune('a' + i))).At(0, 0)
	}
	links := []Link{{Source: "a", Target: "b", Weight: 1}, {Source: "c", Target: "c", Weight: 1}}
	require.NoError(t, sim.Initialize(nodes, links))

	for i := 0; i < 100; i++ {
		sim.Step()
	}

	spread := 0.0
	for _, n := range sim.Nodes() {
		require.True(t, vmath.Finite(n.X) && vmath.Finite(n.Y), "node %s", n.ID)
		spread = math.Max(spread, math.Hypot(n.X, n.Y))
	}
	assert.Greater(t, spread, 1.0)
}

func TestUpdateTopologyPreservesState(t *testing.T) {
	sim := New(DefaultConfig())
	require.NoError(t, sim.Initialize(
		[]Node{NewNode("A"), NewNode("B")},
		[]Link{{Source: "A", Target: "B", Weight: 1}},
	))
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	require.NoError(t, sim.Pin("B", 1, 2))
	before, _ := sim.Node("A")
	alpha := sim.Alpha()

	err := sim.UpdateTopology(
		[]Node{NewNode("C"), NewNode("A"), NewNode("B")},
		[]Link{{Source: "A", Target: "C", Weight: 0.5}, {Source: "B", Target: "C", Weight: 0}},
	)
	require.NoError(t, err)

	after, ok := sim.Node("A")
	require.True(t, ok)
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y, after.Y)
	assert.Equal(t, before.VX, after.VX)
	assert.Equal(t, before.VY, after.VY)

	b, _ := sim.Node("B")
	require.True(t, b.Pinned())
	assert.Equal(t, 1.0, *b.FX)

	c, _ := sim.Node("C")
	assert.True(t, c.Placed())
	assert.Equal(t, alpha, sim.Alpha())
	assert.Len(t, sim.Links(), 2)

	sim.Step()
	for _, n := range sim.Nodes() {
		assert.True(t, vmath.Finite(n.X) && vmath.Finite(n.Y))
	}
}

func TestFrozenLayoutMovesOnlyThroughPins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Freeze = true
	sim := New(cfg)
	nodes, links := chain()
	nodes[0] = nodes[0].At(0, 0)
	nodes[1] = nodes[1].At(10, 0)
	nodes[2] = nodes[2].At(20, 0)
	require.NoError(t, sim.Initialize(nodes, links))
	require.Equal(t, StateFrozen, sim.State())

	ticks := 0
	sim.OnTick(func(TickEvent) { ticks++ })

	assert.True(t, sim.Tick(), "first frozen tick renders the initial layout")
	for i := 0; i < 10; i++ {
		assert.False(t, sim.Tick())
	}
	b, _ := sim.Node("B")
	assert.Equal(t, 10.0, b.X)

	require.NoError(t, sim.Pin("B", 12, 3))
	assert.True(t, sim.Tick())
	require.NoError(t, sim.Release("B"))
	assert.True(t, sim.Tick())
	assert.Equal(t, 3, ticks)

	b, _ = sim.Node("B")
	assert.Equal(t, 12.0, b.X)
	assert.Equal(t, 3.0, b.Y)
	a, _ := sim.Node("A")
	assert.Equal(t, 0.0, a.X)

	// Restart does not thaw
	sim.Restart(DragAlphaTarget)
	assert.Equal(t, StateFrozen, sim.State())

	cfg.Freeze = false
	sim.SetConfig(cfg)
	assert.Equal(t, StateRunning, sim.State())
	assert.GreaterOrEqual(t, sim.Alpha(), UnfreezeAlpha)
}

func TestRestartWakesIdleLayout(t *testing.T) {
	sim := New(DefaultConfig())
	nodes, links := chain()
	require.NoError(t, sim.Initialize(nodes, links))
	for i := 0; i < 1000 && sim.State() == StateRunning; i++ {
		sim.Tick()
	}
	require.Equal(t, StateIdle, sim.State())
	assert.False(t, sim.Tick())

	sim.Restart(DragAlphaTarget)
	assert.Equal(t, StateRunning, sim.State())
	for i := 0; i < 500; i++ {
		require.True(t, sim.Tick())
	}
	assert.InDelta(t, DragAlphaTarget, sim.Alpha(), 0.01)
	assert.Equal(t, StateRunning, sim.State())

	sim.Restart(0)
	for i := 0; i < 1000 && sim.State() == StateRunning; i++ {
		sim.Tick()
	}
	assert.Equal(t, StateIdle, sim.State())
}

func TestWiggleKeepsLayoutWarm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wiggle = true
	sim := New(cfg)
	nodes, links := chain()
	require.NoError(t, sim.Initialize(nodes, links))

	for i := 0; i < 1000; i++ {
		require.True(t, sim.Tick())
	}
	assert.InDelta(t, WiggleAlpha, sim.Alpha(), 0.01)
	assert.Equal(t, WiggleAlpha, sim.AlphaTarget())

	cfg.Wiggle = false
	sim.SetConfig(cfg)
	assert.Zero(t, sim.AlphaTarget())
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Charge = 0
	cfg.Gravity = 0
	cfg.Centering = false
	cfg.Collision = true
	cfg.Radius = func(*Node) float64 { return 5 }
	sim := New(cfg)
	require.NoError(t, sim.Initialize([]Node{NewNode("a").At(0, 0), NewNode("b").At(1, 0)}, nil))

	for i := 0; i < 200; i++ {
		sim.Step()
	}
	a, _ := sim.Node("a")
	b, _ := sim.Node("b")
	assert.Greater(t, dist(a, b), 9.0)
	assert.InDelta(t, 0.5, (a.X+b.X)/2, 1e-6, "equal radii push symmetrically")
}

func TestLinkStrengthExponent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkStrengthExponent = 1
	sim := New(cfg)
	nodes, links := chain()
	require.NoError(t, sim.Initialize(nodes, links))

	require.Len(t, sim.bound, 2)
	assert.InDelta(t, 1.0, sim.bound[0].strength, 1e-12)
	assert.InDelta(t, 0.5, sim.bound[1].strength, 1e-12)
	assert.InDelta(t, 1.0/3, sim.bound[0].bias, 1e-12)

	cfg.LinkStrengthExponent = 0
	sim.SetConfig(cfg)
	assert.InDelta(t, 1.0, sim.bound[1].strength, 1e-12)
}

func TestBarnesHutMatchesBruteForceWhenFullyOpened(t *testing.T) {
	rng := vmath.NewFastRand(42)
	nodes := make([]Node, 200)
	for i := range nodes {
		nodes[i] = Node{X: rng.Float64()*400 - 200, Y: rng.Float64()*400 - 200}
	}

	var tree quadtree
	tree.build(nodes)

	const strength = -10.0
	for i := range nodes {
		gx, gy := tree.forceOn(i, strength, 1e-18, 1, 0, rng)

		var wx, wy float64
		for j := range nodes {
			if j == i {
				continue
			}
			dx, dy := nodes[j].X-nodes[i].X, nodes[j].Y-nodes[i].Y
			l := dx*dx + dy*dy
			if l < 1 {
				l = math.Sqrt(l)
			}
			wx += dx * strength / l
			wy += dy * strength / l
		}
		require.InDelta(t, wx, gx, 1e-9*math.Max(1, math.Abs(wx)), "node %d x", i)
		require.InDelta(t, wy, gy, 1e-9*math.Max(1, math.Abs(wy)), "node %d y", i)
	}
}

func TestQuadtreeRebuildReusesStorage(t *testing.T) {
	rng := vmath.NewFastRand(7)
	nodes := make([]Node, 300)
	for i := range nodes {
		nodes[i] = Node{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}

	var tree quadtree
	tree.build(nodes)
	peak := cap(tree.quads)
	for k := 0; k < 20; k++ {
		tree.build(nodes)
	}
	assert.Equal(t, peak, cap(tree.quads))
	assert.Equal(t, len(nodes), tree.quads[0].count)
}
