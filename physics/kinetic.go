package physics

import (
	"github.com/lixenwraith/forcegraph/vmath"
)

// Integrate applies velocity decay then advances position: v *= 1-decay; p += v
// Pinned axes snap to the pin with zero velocity
func Integrate(n *Node, decay float64) {
	if n.FX != nil {
		n.X, n.VX = *n.FX, 0
	} else {
		n.VX *= 1 - decay
		n.X += n.VX
	}
	if n.FY != nil {
		n.Y, n.VY = *n.FY, 0
	} else {
		n.VY *= 1 - decay
		n.Y += n.VY
	}
}

// SnapPinned moves pinned axes onto their pin without integrating the rest
func SnapPinned(n *Node) {
	if n.FX != nil {
		n.X, n.VX = *n.FX, 0
	}
	if n.FY != nil {
		n.Y, n.VY = *n.FY, 0
	}
}

// ApplyImpulse adds a velocity delta
func ApplyImpulse(n *Node, vx, vy float64) {
	n.VX += vx
	n.VY += vy
}

// Stop zeroes velocity
func Stop(n *Node) {
	n.VX, n.VY = 0, 0
}

// Guard restores (px, py) and stops the node if a step produced a non-finite value
// Returns true if the node was reset
func Guard(n *Node, px, py float64) bool {
	if vmath.Finite(n.X) && vmath.Finite(n.Y) && vmath.Finite(n.VX) && vmath.Finite(n.VY) {
		return false
	}
	n.X, n.Y = px, py
	Stop(n)
	return true
}
