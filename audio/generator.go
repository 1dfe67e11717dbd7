package audio

import (
	"math"
	"time"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveTriangle
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates a waveform sweeping linearly from f0 to f1 Hz
func oscillator(waveType int, f0, f1 float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveTriangle:
			buf[i] = 1 - 4*math.Abs(phase-0.5)
		}

		freq := f0
		if samples > 1 {
			freq += (f1 - f0) * float64(i) / float64(samples-1)
		}
		phase += freq / float64(SampleRate)
		phase -= math.Floor(phase)
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// concatFloatBuffers appends b to a
func concatFloatBuffers(a, b floatBuffer) floatBuffer {
	result := make(floatBuffer, len(a)+len(b))
	copy(result, a)
	copy(result[len(a):], b)
	return result
}

func durationToSamples(d time.Duration) int {
	return SampleRate.N(d)
}

// --- Cue generators (unity gain) ---

// generateGrab is a short rising chirp
func generateGrab() floatBuffer {
	buf := oscillator(waveSine, NoteFreq(69), NoteFreq(76), durationToSamples(chirpDuration))
	applyEnvelope(buf, chirpAttack, chirpRelease)
	return buf
}

// generateDrop mirrors the grab chirp downward
func generateDrop() floatBuffer {
	buf := oscillator(waveSine, NoteFreq(76), NoteFreq(69), durationToSamples(chirpDuration))
	applyEnvelope(buf, chirpAttack, chirpRelease)
	return buf
}

// generateSettle is a two-note chime with a soft octave overtone
func generateSettle() floatBuffer {
	note := func(midi int) floatBuffer {
		n := durationToSamples(chimeNote)
		fund := oscillator(waveSine, NoteFreq(midi), NoteFreq(midi), n)
		applyEnvelope(fund, chirpAttack, chimeRelease)
		over := oscillator(waveTriangle, NoteFreq(midi+12), NoteFreq(midi+12), n)
		applyEnvelope(over, chirpAttack, chimeRelease/2)
		return mixFloatBuffers(fund, over, 0.3/0.7)
	}
	return concatFloatBuffers(note(72), note(79))
}

// generateToggle is a short square click
func generateToggle() floatBuffer {
	buf := oscillator(waveSquare, NoteFreq(84), NoteFreq(84), durationToSamples(clickDuration))
	applyEnvelope(buf, 0, clickRelease)
	return buf
}

// generateCue dispatches to specific generator
func generateCue(c CueType) floatBuffer {
	switch c {
	case CueGrab:
		return generateGrab()
	case CueDrop:
		return generateDrop()
	case CueSettle:
		return generateSettle()
	case CueToggle:
		return generateToggle()
	default:
		return nil
	}
}
