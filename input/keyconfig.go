package input

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"plus":      '+',
	"minus":     '-',
}

// keymapFile is the TOML layout: [keys] holds named special keys, [runes] printable ones
type keymapFile struct {
	Keys  map[string]string `toml:"keys"`
	Runes map[string]string `toml:"runes"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only sections/keys present in TOML are populated
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keymapFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown entry %q", undecoded[0].String())
	}

	kt := &KeyTable{}

	if raw.Keys != nil {
		kt.SpecialKeys = make(map[tcell.Key]IntentType, len(raw.Keys))
		for keyStr, actionName := range raw.Keys {
			k, ok := keyByName(keyStr)
			if !ok {
				return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
			}
			it, err := resolveAction(actionName)
			if err != nil {
				return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
			}
			kt.SpecialKeys[k] = it
		}
	}

	if raw.Runes != nil {
		kt.Runes = make(map[rune]IntentType, len(raw.Runes))
		for keyStr, actionName := range raw.Runes {
			r, err := resolveRune(keyStr)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			it, err := resolveAction(actionName)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
			}
			kt.Runes[r] = it
		}
	}

	return kt, nil
}

// keyByName resolves tcell key names case-insensitively ("Esc", "ctrl-c", "Up")
func keyByName(name string) (tcell.Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range tcell.KeyNames {
		if strings.ToLower(n) == name {
			return k, true
		}
	}
	return 0, false
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to an intent
func resolveAction(name string) (IntentType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	it, ok := ActionIntent(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return it, nil
}
