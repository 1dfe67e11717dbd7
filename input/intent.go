package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentResize // Terminal resize event

	// Pointer input, routed to the Controller
	IntentPointer

	// Layout toggles
	IntentToggleCollision // c
	IntentToggleLabels    // l
	IntentToggleFreeze    // f
	IntentToggleWiggle    // w
	IntentToggleMute      // m

	// View
	IntentFit     // r
	IntentZoomIn  // +, =
	IntentZoomOut // -
	IntentPanLeft
	IntentPanRight
	IntentPanUp
	IntentPanDown

	// Export
	IntentSnapshot // s
)

// Intent is the parsed result of one terminal event
type Intent struct {
	Type    IntentType
	Pointer Event // valid for IntentPointer
}
