package physics

import (
	"math"
)

// RadiusFunc maps a node to its visual radius in world units
type RadiusFunc func(n *Node) float64

// Config holds the named forces and their parameters
// A Config is read-only during a step; replace it wholesale with Simulation.SetConfig
type Config struct {
	// Link spring
	LinkDistance         float64
	LinkStrengthExponent float64 // strength scales with weight^exp

	// Many-body (negative repels)
	Charge      float64
	Theta       float64 // Barnes-Hut opening criterion
	DistanceMin float64
	DistanceMax float64 // 0 = unbounded

	// Centering and axis gravity
	CenterX, CenterY float64
	Centering        bool
	Gravity          float64 // strength of the x/y pull, 0 disables
	GravityX         float64
	GravityY         float64

	// Collision
	Collision         bool
	CollisionStrength float64
	Radius            RadiusFunc

	// Integration and cooling
	VelocityDecay float64 // fraction of velocity lost per step
	AlphaMin      float64
	AlphaDecay    float64

	// Freeze pins every node in place: no forces, positions change only through pins
	Freeze bool
	// Wiggle holds the alpha target at WiggleAlpha so the layout keeps moving
	Wiggle bool

	// Seed for deterministic placement and jiggle
	Seed uint64
	// InitialSpread is the half-width of the square unplaced nodes are seeded into
	// 0 derives it from node count and link distance
	InitialSpread float64
}

const (
	// DragAlphaTarget keeps the layout warm while a node is held
	DragAlphaTarget = 0.3
	// DropAlpha is the least energy a released node leaves the layout with
	DropAlpha = 0.3
	// WiggleAlpha is the alpha target maintained while Wiggle is on
	WiggleAlpha = 0.3
	// UnfreezeAlpha is the energy given to a layout leaving Freeze
	UnfreezeAlpha = 0.3
)

// DefaultConfig returns terminal-scaled netwulf defaults
func DefaultConfig() Config {
	return Config{
		LinkDistance:         30,
		LinkStrengthExponent: 0.1,
		Charge:               -10,
		Theta:                0.9,
		DistanceMin:          1,
		Centering:            true,
		Gravity:              0.1,
		CollisionStrength:    0.7,
		VelocityDecay:        0.4,
		AlphaMin:             0.001,
		AlphaDecay:           1 - math.Pow(0.001, 1.0/300),
		Seed:                 1,
	}
}

// normalized returns c with out-of-range parameters clamped silently
func (c Config) normalized() Config {
	if !(c.LinkDistance > 0) {
		c.LinkDistance = 1
	}
	if !(c.Theta > 0) {
		c.Theta = 0.9
	}
	if !(c.DistanceMin > 0) {
		c.DistanceMin = 1
	}
	if c.DistanceMax < 0 || math.IsNaN(c.DistanceMax) {
		c.DistanceMax = 0
	}
	if math.IsNaN(c.Gravity) || c.Gravity < 0 {
		c.Gravity = 0
	}
	if !(c.CollisionStrength > 0) || c.CollisionStrength > 1 {
		c.CollisionStrength = 0.7
	}
	if !(c.VelocityDecay >= 0) || c.VelocityDecay > 1 {
		c.VelocityDecay = 0.4
	}
	if !(c.AlphaMin > 0) {
		c.AlphaMin = 0.001
	}
	if !(c.AlphaDecay > 0) || c.AlphaDecay >= 1 {
		c.AlphaDecay = 1 - math.Pow(c.AlphaMin, 1.0/300)
	}
	if math.IsNaN(c.LinkStrengthExponent) {
		c.LinkStrengthExponent = 0
	}
	return c
}
