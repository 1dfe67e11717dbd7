package audio

import "math"

// noteFrequencies holds MIDI notes 0-127, A4 (note 69) = 440Hz, equal temperament
var noteFrequencies [128]float64

func init() {
	for i := range noteFrequencies {
		noteFrequencies[i] = 440.0 * math.Exp2((float64(i)-69.0)/12.0)
	}
}

// NoteFreq returns frequency in Hz for MIDI note number
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= len(noteFrequencies) {
		return 0
	}
	return noteFrequencies[midi]
}
