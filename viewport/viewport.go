// Package viewport holds the pan/zoom transform between screen and world space
package viewport

import (
	"math"

	"github.com/lixenwraith/forcegraph/vmath"
)

// Zoom extent
const (
	MinScale = 0.1
	MaxScale = 8.0
)

// Transform maps world to screen: screen = world*K + (X, Y)
type Transform struct {
	K float64
	X float64
	Y float64
}

// Identity is the unit transform
var Identity = Transform{K: 1}

// Clamped returns t with K inside the zoom extent and non-finite translation reset
func (t Transform) Clamped() Transform {
	if !vmath.Finite(t.K) {
		t.K = 1
	}
	t.K = vmath.Clamp(t.K, MinScale, MaxScale)
	if !vmath.Finite(t.X) {
		t.X = 0
	}
	if !vmath.Finite(t.Y) {
		t.Y = 0
	}
	return t
}

// Apply maps a world point to screen
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a screen point to world
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.K, (sy - t.Y) / t.K
}

// Viewport owns the current transform
// Every read sees the last committed transform; there is no pending state
type Viewport struct {
	t       Transform
	initial Transform
}

// New creates a viewport starting at initial (clamped)
func New(initial Transform) *Viewport {
	initial = initial.Clamped()
	return &Viewport{t: initial, initial: initial}
}

// Transform returns the current transform
func (v *Viewport) Transform() Transform {
	return v.t
}

// SetTransform replaces the transform, clamping the scale silently
func (v *Viewport) SetTransform(t Transform) {
	v.t = t.Clamped()
}

// Reset returns to the initial transform
func (v *Viewport) Reset() {
	v.t = v.initial
}

// Scale returns the current zoom factor
func (v *Viewport) Scale() float64 {
	return v.t.K
}

// ScreenToWorld converts a screen point to world coordinates
func (v *Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return v.t.Invert(sx, sy)
}

// WorldToScreen converts a world point to screen coordinates
func (v *Viewport) WorldToScreen(x, y float64) (float64, float64) {
	return v.t.Apply(x, y)
}

// ApplyZoom multiplies the scale by factor around the screen pivot (px, py)
// The world point under the pivot stays under the pivot; a clamped scale still honors this
func (v *Viewport) ApplyZoom(factor, px, py float64) {
	if !vmath.Finite(factor) || factor <= 0 {
		return
	}
	k := vmath.Clamp(v.t.K*factor, MinScale, MaxScale)
	if k == v.t.K {
		return
	}
	wx, wy := v.t.Invert(px, py)
	v.t = Transform{K: k, X: px - wx*k, Y: py - wy*k}
}

// ApplyPan shifts the translation by a screen-space delta
func (v *Viewport) ApplyPan(dx, dy float64) {
	if !vmath.Finite(dx) || !vmath.Finite(dy) {
		return
	}
	v.t.X += dx
	v.t.Y += dy
}

// Fit centers the world box on a width x height screen with padding on every side
// Degenerate boxes keep the current scale and only center
func (v *Viewport) Fit(box vmath.Box, width, height, padding float64) {
	if width <= 0 || height <= 0 {
		return
	}
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2

	k := v.t.K
	bw := box.Max.X - box.Min.X
	bh := box.Max.Y - box.Min.Y
	aw := math.Max(width-2*padding, 1)
	ah := math.Max(height-2*padding, 1)
	switch {
	case bw > vmath.Epsilon && bh > vmath.Epsilon:
		k = math.Min(aw/bw, ah/bh)
	case bw > vmath.Epsilon:
		k = aw / bw
	case bh > vmath.Epsilon:
		k = ah / bh
	}
	k = vmath.Clamp(k, MinScale, MaxScale)

	v.t = Transform{K: k, X: width/2 - cx*k, Y: height/2 - cy*k}
}
