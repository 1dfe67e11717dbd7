// Package audio plays short tone cues for interaction feedback
package audio

import (
	"errors"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the output rate of every cue
const SampleRate = beep.SampleRate(44100)

// CueType identifies a feedback sound
type CueType int

const (
	CueGrab   CueType = iota // Node picked up
	CueDrop                  // Node released
	CueSettle                // Layout came to rest
	CueToggle                // Setting switched
	cueTypeCount
)

func (c CueType) String() string {
	switch c {
	case CueGrab:
		return "grab"
	case CueDrop:
		return "drop"
	case CueSettle:
		return "settle"
	case CueToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Cue timing
const (
	chirpDuration   = 70 * time.Millisecond
	chirpAttack     = 5 * time.Millisecond
	chirpRelease    = 40 * time.Millisecond
	chimeNote       = 90 * time.Millisecond
	chimeRelease    = 70 * time.Millisecond
	clickDuration   = 12 * time.Millisecond
	clickRelease    = 8 * time.Millisecond
	defaultCueLevel = 0.25
)

// ErrNotInitialized is returned when playing before Initialize
var ErrNotInitialized = errors.New("audio not initialized")
