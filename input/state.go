package input

// State is the pointer interaction state
type State uint8

const (
	StateIdle     State = iota // No button held; moves hover
	StatePanning               // Button held on empty canvas; moves pan the viewport
	StateDragging              // Button held on a node; moves reposition its pin
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePanning:
		return "panning"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragState names the node held by the pointer, if any
type DragState struct {
	NodeID string
	Active bool
}

// EventKind discriminates pointer events
type EventKind uint8

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
)

// Event is a pointer event in screen coordinates
// Delta is the wheel step count for Wheel events, positive zooms in
type Event struct {
	Kind  EventKind
	X, Y  float64
	Delta int
}
