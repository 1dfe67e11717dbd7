package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine is the input state machine
// Parses tcell events into semantic Intents, splitting mouse reports into press/move/release
type Machine struct {
	keyTable *KeyTable

	// Screen units per terminal cell; pointer events land on cell centers
	scaleX, scaleY float64

	// Button state from the previous mouse report
	prevButtons tcell.ButtonMask
}

// NewMachine creates a machine reporting pointer positions in cells scaled by (scaleX, scaleY)
func NewMachine(keyTable *KeyTable, scaleX, scaleY float64) *Machine {
	if keyTable == nil {
		keyTable = DefaultKeyTable()
	}
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}
	return &Machine{
		keyTable: keyTable,
		scaleX:   scaleX,
		scaleY:   scaleY,
	}
}

// Reset forgets button state, e.g. after focus loss
func (m *Machine) Reset() {
	m.prevButtons = tcell.ButtonNone
}

// Process parses a terminal event and returns an Intent
// Returns nil for events with no binding
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		if it := m.keyTable.Lookup(ev); it != IntentNone {
			return &Intent{Type: it}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	cx, cy := ev.Position()
	x := (float64(cx) + 0.5) * m.scaleX
	y := (float64(cy) + 0.5) * m.scaleY

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return &Intent{Type: IntentPointer, Pointer: Event{Kind: Wheel, X: x, Y: y, Delta: 1}}
	case buttons&tcell.WheelDown != 0:
		return &Intent{Type: IntentPointer, Pointer: Event{Kind: Wheel, X: x, Y: y, Delta: -1}}
	}

	held := buttons&tcell.Button1 != 0
	wasHeld := m.prevButtons&tcell.Button1 != 0
	m.prevButtons = buttons

	kind := PointerMove
	switch {
	case held && !wasHeld:
		kind = PointerDown
	case !held && wasHeld:
		kind = PointerUp
	}
	return &Intent{Type: IntentPointer, Pointer: Event{Kind: kind, X: x, Y: y}}
}
