package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCues returns cues feeding a bare mixer without opening a device
func newTestCues() *ToneCues {
	tc := NewToneCues(0.5)
	tc.enqueue = func(s beep.Streamer) { tc.mixer.Add(s) }
	tc.initialized = true
	return tc
}

func drain(s beep.Streamer, n int) [][2]float64 {
	out := make([][2]float64, n)
	s.Stream(out)
	return out
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

// TestCuesGracefulDegradation verifies playback does not panic without a device
func TestCuesGracefulDegradation(t *testing.T) {
	tc := NewToneCues(0.3)
	assert.NotPanics(t, func() {
		tc.Play(CueGrab)
		tc.Play(CueSettle)
		tc.SetMuted(true)
		tc.Close()
	})
	assert.Zero(t, tc.mixer.Len())

	var c Cues = NopCues{}
	c.Play(CueDrop)
	assert.True(t, c.Muted())
}

// TestCuesInitialization is tolerant of CI machines without audio
func TestCuesInitialization(t *testing.T) {
	tc := NewToneCues(0.3)
	if err := tc.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	require.NoError(t, tc.Initialize(), "second initialization is a no-op")
	tc.Close()
}

func TestCloseReleasesDevice(t *testing.T) {
	tc := newTestCues()
	released := 0
	tc.release = func() { released++ }

	tc.Play(CueDrop)
	tc.Close()
	assert.Equal(t, 1, released)
	assert.Zero(t, tc.mixer.Len())

	// Closed cues are silent and closing again is a no-op
	tc.Play(CueDrop)
	assert.Zero(t, tc.mixer.Len())
	tc.Close()
	assert.Equal(t, 1, released)
}

func TestPlayQueuesAudibleCue(t *testing.T) {
	tc := newTestCues()
	tc.Play(CueGrab)
	require.Equal(t, 1, tc.mixer.Len())

	samples := drain(tc.mixer, 1024)
	p := peak(samples)
	assert.Greater(t, p, 0.0)
	assert.LessOrEqual(t, p, 0.5+1e-9)
	for _, s := range samples {
		assert.Equal(t, s[0], s[1])
	}
}

func TestMutedCuesAreDropped(t *testing.T) {
	tc := newTestCues()
	tc.SetMuted(true)
	assert.True(t, tc.Muted())
	tc.Play(CueToggle)
	assert.Zero(t, tc.mixer.Len())

	tc.SetMuted(false)
	tc.Play(CueToggle)
	assert.Equal(t, 1, tc.mixer.Len())

	tc.Play(CueType(99))
	assert.Equal(t, 1, tc.mixer.Len())
}

func TestBufferStreamerEnds(t *testing.T) {
	s := &bufferStreamer{buf: floatBuffer{1, -1, 0.5}, gain: 2}
	out := make([][2]float64, 2)
	n, ok := s.Stream(out)
	assert.Equal(t, 2, n)
	assert.True(t, ok)
	assert.Equal(t, [2]float64{-2, -2}, out[1])

	n, ok = s.Stream(out)
	assert.Equal(t, 1, n)
	assert.True(t, ok)

	n, ok = s.Stream(out)
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, s.Err())
}

func TestGeneratedCues(t *testing.T) {
	for c := CueType(0); c < cueTypeCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			buf := generateCue(c)
			require.NotEmpty(t, buf)
			for _, v := range buf {
				require.False(t, math.IsNaN(v))
				require.LessOrEqual(t, math.Abs(v), 1.5)
			}
			// Release envelope ends near silence
			assert.Less(t, math.Abs(buf[len(buf)-1]), 0.1)
		})
	}
	assert.Nil(t, generateCue(cueTypeCount))
}

func TestEnvelope(t *testing.T) {
	buf := floatBuffer{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	applyEnvelope(buf, 0, 0)
	assert.Equal(t, 1.0, buf[5])

	n := durationToSamples(chirpDuration)
	assert.Equal(t, 3087, n)
}

func TestCacheReturnsSameBuffer(t *testing.T) {
	c := newCueCache()
	a := c.get(CueSettle)
	b := c.get(CueSettle)
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0])
	assert.Nil(t, c.get(CueType(-1)))
}

func TestNoteFreq(t *testing.T) {
	assert.InDelta(t, 440, NoteFreq(69), 1e-9)
	assert.InDelta(t, 880, NoteFreq(81), 1e-9)
	assert.Zero(t, NoteFreq(128))
	assert.Zero(t, NoteFreq(-1))
}
