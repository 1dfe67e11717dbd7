package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cues plays feedback sounds; implementations never block the caller
type Cues interface {
	Play(c CueType)
	SetMuted(muted bool)
	Muted() bool
	Close()
}

// NopCues is the silent implementation used when audio is disabled or unavailable
type NopCues struct{}

func (NopCues) Play(CueType)  {}
func (NopCues) SetMuted(bool) {}
func (NopCues) Muted() bool   { return true }
func (NopCues) Close()        {}

// ToneCues plays synthesized cues through the beep speaker
type ToneCues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       *cueCache
	level       float64
	muted       bool
	initialized bool

	// enqueue hands a streamer to the output; speaker-locked once initialized
	enqueue func(beep.Streamer)
	// release closes the output device
	release func()
}

// NewToneCues creates a cue player at the given output level in [0, 1]
func NewToneCues(level float64) *ToneCues {
	if !(level > 0) || level > 1 {
		level = defaultCueLevel
	}
	tc := &ToneCues{
		mixer: &beep.Mixer{},
		cache: newCueCache(),
		level: level,
	}
	tc.enqueue = func(s beep.Streamer) {
		speaker.Lock()
		tc.mixer.Add(s)
		speaker.Unlock()
	}
	tc.release = speaker.Close
	return tc
}

// Initialize sets up the audio system
func (tc *ToneCues) Initialize() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.initialized {
		return nil
	}

	err := speaker.Init(SampleRate, SampleRate.N(time.Millisecond*50))
	if err != nil {
		return err
	}

	tc.cache.preload()
	speaker.Play(tc.mixer)
	tc.initialized = true
	return nil
}

// Play queues cue c; a no-op when muted or not initialized
func (tc *ToneCues) Play(c CueType) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if !tc.initialized || tc.muted {
		return
	}
	buf := tc.cache.get(c)
	if len(buf) == 0 {
		return
	}
	tc.enqueue(&bufferStreamer{buf: buf, gain: tc.level})
}

// SetMuted silences future cues; cues already playing finish
func (tc *ToneCues) SetMuted(muted bool) {
	tc.mu.Lock()
	tc.muted = muted
	tc.mu.Unlock()
}

// Muted reports the mute state
func (tc *ToneCues) Muted() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.muted
}

// Close stops all sounds and releases the audio device
func (tc *ToneCues) Close() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if !tc.initialized {
		return
	}

	speaker.Lock()
	tc.mixer.Clear()
	speaker.Unlock()
	tc.release()
	tc.initialized = false
}

// bufferStreamer plays a mono buffer once on both channels
type bufferStreamer struct {
	buf  floatBuffer
	pos  int
	gain float64
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.buf) {
		v := s.buf[s.pos] * s.gain
		samples[n][0] = v
		samples[n][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
