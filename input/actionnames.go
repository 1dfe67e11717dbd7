package input

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve TOML action strings to bindings
var actionRegistry = map[string]IntentType{
	// Unbind sentinel
	"none": IntentNone,

	"quit": IntentQuit,

	"toggle_collision": IntentToggleCollision,
	"toggle_labels":    IntentToggleLabels,
	"toggle_freeze":    IntentToggleFreeze,
	"toggle_wiggle":    IntentToggleWiggle,
	"toggle_mute":      IntentToggleMute,

	"fit":       IntentFit,
	"zoom_in":   IntentZoomIn,
	"zoom_out":  IntentZoomOut,
	"pan_left":  IntentPanLeft,
	"pan_right": IntentPanRight,
	"pan_up":    IntentPanUp,
	"pan_down":  IntentPanDown,

	"snapshot": IntentSnapshot,
}

// ActionIntent returns the intent for an action name
func ActionIntent(name string) (IntentType, bool) {
	it, ok := actionRegistry[name]
	return it, ok
}

// ActionName returns the canonical name of an intent, "" if it has none
func ActionName(it IntentType) string {
	if it == IntentNone {
		return "none"
	}
	for name, v := range actionRegistry {
		if v == it {
			return name
		}
	}
	return ""
}
