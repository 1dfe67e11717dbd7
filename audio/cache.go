package audio

import "sync"

// cueCache stores pre-generated unity-gain float buffers
type cueCache struct {
	mu    sync.RWMutex
	store [cueTypeCount]floatBuffer
	ready [cueTypeCount]bool
}

func newCueCache() *cueCache {
	return &cueCache{}
}

// get returns cached buffer or generates on demand
func (c *cueCache) get(ct CueType) floatBuffer {
	if ct < 0 || ct >= cueTypeCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[ct] {
		buf := c.store[ct]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[ct] {
		return c.store[ct]
	}

	buf := generateCue(ct)
	c.store[ct] = buf
	c.ready[ct] = true
	return buf
}

// preload generates the drag cues, played most often
func (c *cueCache) preload() {
	c.get(CueGrab)
	c.get(CueDrop)
}
