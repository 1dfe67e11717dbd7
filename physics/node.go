package physics

import (
	"errors"
	"math"
)

var (
	// ErrUnknownNode indicates a link or pin references an id that is not in the node set
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode indicates two nodes share an id
	ErrDuplicateNode = errors.New("duplicate node id")
)

// Node is a simulated vertex in world coordinates
// A NaN X or Y marks the position as absent; Initialize seeds it
// FX/FY hold the pinned position; a nil pair means the node moves freely
type Node struct {
	ID string

	X, Y   float64
	FX, FY *float64

	// Size and Degree are normalized attributes consumed by the radius function
	Size   float64
	Degree float64
	// Color is the resolved fill ("" renders with the style default)
	Color string
	Group string

	// VX, VY are integrator state, callers treat them as read-only
	VX, VY float64
}

// NewNode returns a node without a position
func NewNode(id string) Node {
	return Node{ID: id, X: math.NaN(), Y: math.NaN(), Size: 1, Degree: 1}
}

// At returns a copy of n placed at (x, y)
func (n Node) At(x, y float64) Node {
	n.X, n.Y = x, y
	return n
}

// Placed reports whether the node carries a finite position
func (n *Node) Placed() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsInf(n.X, 0) && !math.IsInf(n.Y, 0)
}

// Pinned reports whether the node is held fixed
func (n *Node) Pinned() bool {
	return n.FX != nil || n.FY != nil
}

// Link is an edge between two node ids, Weight in (0, 1]
type Link struct {
	Source string
	Target string
	Weight float64
}

// boundLink caches endpoint indices and per-link spring parameters
type boundLink struct {
	source, target int
	strength       float64
	bias           float64
}
