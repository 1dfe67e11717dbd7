package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyLeft:   IntentPanLeft,
			tcell.KeyRight:  IntentPanRight,
			tcell.KeyUp:     IntentPanUp,
			tcell.KeyDown:   IntentPanDown,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'c': IntentToggleCollision,
			'l': IntentToggleLabels,
			'f': IntentToggleFreeze,
			'w': IntentToggleWiggle,
			'm': IntentToggleMute,
			'r': IntentFit,
			's': IntentSnapshot,
			'+': IntentZoomIn,
			'=': IntentZoomIn,
			'-': IntentZoomOut,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event to an intent type
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries mapped to IntentNone ("none" action) delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if result.SpecialKeys == nil {
		result.SpecialKeys = make(map[tcell.Key]IntentType)
	}
	if result.Runes == nil {
		result.Runes = make(map[rune]IntentType)
	}
	mergeMap(result.SpecialKeys, override.SpecialKeys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]IntentType) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
