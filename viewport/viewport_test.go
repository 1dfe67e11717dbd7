package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/forcegraph/vmath"
)

func TestRoundTrip(t *testing.T) {
	rng := vmath.NewFastRand(3)
	for i := 0; i < 500; i++ {
		tr := Transform{
			K: MinScale + rng.Float64()*(MaxScale-MinScale),
			X: rng.Float64()*2000 - 1000,
			Y: rng.Float64()*2000 - 1000,
		}
		v := New(tr)
		x, y := rng.Float64()*1e4-5e3, rng.Float64()*1e4-5e3

		sx, sy := v.WorldToScreen(x, y)
		gx, gy := v.ScreenToWorld(sx, sy)
		require.InDelta(t, x, gx, 1e-9*(1+abs(x)))
		require.InDelta(t, y, gy, 1e-9*(1+abs(y)))
	}
}

func TestZoomKeepsPivotFixed(t *testing.T) {
	tests := []struct {
		name   string
		start  Transform
		factor float64
		px, py float64
	}{
		{"zoom in at origin", Identity, 1.1, 0, 0},
		{"zoom in off-center", Transform{K: 1.5, X: 40, Y: -12}, 2, 120, 33},
		{"zoom out", Transform{K: 2, X: 10, Y: 10}, 0.5, 64, 48},
		{"clamped at max", Transform{K: 7, X: 5, Y: 5}, 10, 17, 90},
		{"clamped at min", Transform{K: 0.2, X: 5, Y: 5}, 0.01, -30, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.start)
			wx, wy := v.ScreenToWorld(tt.px, tt.py)

			v.ApplyZoom(tt.factor, tt.px, tt.py)

			sx, sy := v.WorldToScreen(wx, wy)
			assert.InDelta(t, tt.px, sx, 1e-9)
			assert.InDelta(t, tt.py, sy, 1e-9)
			assert.GreaterOrEqual(t, v.Scale(), MinScale)
			assert.LessOrEqual(t, v.Scale(), MaxScale)
		})
	}
}

func TestZoomAtLimitIsNoop(t *testing.T) {
	v := New(Transform{K: MaxScale, X: 3, Y: 4})
	v.ApplyZoom(1.5, 100, 100)
	assert.Equal(t, Transform{K: MaxScale, X: 3, Y: 4}, v.Transform())

	v.ApplyZoom(0, 1, 1)
	v.ApplyZoom(-2, 1, 1)
	assert.Equal(t, MaxScale, v.Scale())
}

func TestPanLeavesScale(t *testing.T) {
	v := New(Transform{K: 2})
	v.ApplyPan(10, -5)
	v.ApplyPan(1, 1)
	assert.Equal(t, Transform{K: 2, X: 11, Y: -4}, v.Transform())
}

func TestSetTransformClamps(t *testing.T) {
	v := New(Identity)
	v.SetTransform(Transform{K: 100, X: 1, Y: 2})
	assert.Equal(t, MaxScale, v.Scale())

	v.SetTransform(Transform{K: 0})
	assert.Equal(t, MinScale, v.Scale())

	v.Reset()
	assert.Equal(t, Identity, v.Transform())
}

func TestFitCentersBox(t *testing.T) {
	v := New(Identity)
	box := vmath.Box{Min: vmath.Vec{X: -10, Y: -5}, Max: vmath.Vec{X: 10, Y: 5}}
	v.Fit(box, 200, 100, 10)

	// 180/20 = 9 and 80/10 = 8, clamped to MaxScale
	assert.Equal(t, MaxScale, v.Scale())
	sx, sy := v.WorldToScreen(0, 0)
	assert.InDelta(t, 100, sx, 1e-9)
	assert.InDelta(t, 50, sy, 1e-9)

	v.Fit(vmath.Box{Min: vmath.Vec{X: 0, Y: 0}, Max: vmath.Vec{X: 400, Y: 100}}, 200, 100, 0)
	assert.InDelta(t, 0.5, v.Scale(), 1e-12)
	sx, _ = v.WorldToScreen(0, 0)
	assert.InDelta(t, 0, sx, 1e-9)

	// Single point keeps the scale
	v.Fit(vmath.Box{Min: vmath.Vec{X: 3, Y: 3}, Max: vmath.Vec{X: 3, Y: 3}}, 200, 100, 0)
	assert.InDelta(t, 0.5, v.Scale(), 1e-12)
	sx, sy = v.WorldToScreen(3, 3)
	assert.InDelta(t, 100, sx, 1e-9)
	assert.InDelta(t, 50, sy, 1e-9)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
