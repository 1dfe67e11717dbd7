package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/render"
	"github.com/lixenwraith/forcegraph/snapshot"
)

func TestDefaultIsClamped(t *testing.T) {
	d := Default()
	assert.Equal(t, d, d.Clamp())
	assert.Equal(t, "#16a085", d.Style.NodeFill)
	assert.Equal(t, -10.0, d.Physics.Charge)
	assert.Equal(t, 1.5, d.View.Zoom)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[physics]
charge = -30
collision = true
seed = 7

[style]
node_fill = "ff8800"
show_labels = true
min_weight_percent = 20

[view]
zoom = 3
`)
	require.NoError(t, err)
	assert.Equal(t, -30.0, cfg.Physics.Charge)
	assert.True(t, cfg.Physics.Collision)
	assert.Equal(t, uint64(7), cfg.Physics.Seed)
	assert.Equal(t, "#ff8800", cfg.Style.NodeFill)
	assert.Equal(t, 3.0, cfg.View.Zoom)
	// Untouched keys keep defaults
	assert.Equal(t, Default().Physics.Gravity, cfg.Physics.Gravity)

	st := cfg.RenderStyle()
	assert.Equal(t, render.RGB{R: 255, G: 136, B: 0}, st.NodeFill)
	assert.True(t, st.ShowLabels)
	assert.Equal(t, 20.0, st.MinWeightPercent)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode("[physics]\ncharg = -30\n")
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = Decode("[physics\n")
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		check func(*testing.T, Config)
	}{
		{"zoom above max", func(c *Config) { c.View.Zoom = 50 }, func(t *testing.T, c Config) { assert.Equal(t, 8.0, c.View.Zoom) }},
		{"zoom below min", func(c *Config) { c.View.Zoom = 0.01 }, func(t *testing.T, c Config) { assert.Equal(t, 0.1, c.View.Zoom) }},
		{"negative zoom", func(c *Config) { c.View.Zoom = -1 }, func(t *testing.T, c Config) { assert.Equal(t, 1.5, c.View.Zoom) }},
		{"fps", func(c *Config) { c.View.FPS = 0 }, func(t *testing.T, c Config) { assert.Equal(t, MinFPS, c.View.FPS) }},
		{"fps high", func(c *Config) { c.View.FPS = 1000 }, func(t *testing.T, c Config) { assert.Equal(t, MaxFPS, c.View.FPS) }},
		{"nan charge", func(c *Config) { c.Physics.Charge = math.NaN() }, func(t *testing.T, c Config) { assert.Equal(t, -10.0, c.Physics.Charge) }},
		{"negative gravity", func(c *Config) { c.Physics.Gravity = -1 }, func(t *testing.T, c Config) { assert.Zero(t, c.Physics.Gravity) }},
		{"alpha decay", func(c *Config) { c.Physics.AlphaDecay = 1 }, func(t *testing.T, c Config) { assert.Equal(t, Default().Physics.AlphaDecay, c.Physics.AlphaDecay) }},
		{"bad color", func(c *Config) { c.Style.LinkColor = "blue-ish" }, func(t *testing.T, c Config) { assert.Equal(t, "#7c7c7c", c.Style.LinkColor) }},
		{"short color", func(c *Config) { c.Style.LinkColor = "#fff" }, func(t *testing.T, c Config) { assert.Equal(t, "#ffffff", c.Style.LinkColor) }},
		{"link alpha", func(c *Config) { c.Style.LinkAlpha = 2 }, func(t *testing.T, c Config) { assert.Equal(t, 1.0, c.Style.LinkAlpha) }},
		{"weight band inverted", func(c *Config) { c.Style.MinWeightPercent, c.Style.MaxWeightPercent = 60, 40 }, func(t *testing.T, c Config) {
			assert.Equal(t, 60.0, c.Style.MinWeightPercent)
			assert.Equal(t, 60.0, c.Style.MaxWeightPercent)
		}},
		{"label sizes inverted", func(c *Config) { c.Style.LabelMaxSize = 1 }, func(t *testing.T, c Config) { assert.Equal(t, c.Style.LabelMinSize, c.Style.LabelMaxSize) }},
		{"zoom step", func(c *Config) { c.Input.ZoomStep = 0.5 }, func(t *testing.T, c Config) { assert.Equal(t, 1.1, c.Input.ZoomStep) }},
		{"audio level", func(c *Config) { c.Audio.Level = -3 }, func(t *testing.T, c Config) { assert.Zero(t, c.Audio.Level) }},
		{"snapshot format", func(c *Config) { c.Snapshot.Format = "xml" }, func(t *testing.T, c Config) { assert.Equal(t, "json", c.Snapshot.Format) }},
		{"snapshot dir", func(c *Config) { c.Snapshot.Dir = "" }, func(t *testing.T, c Config) { assert.Equal(t, ".", c.Snapshot.Dir) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.edit(&c)
			tt.check(t, c.Clamp())
		})
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg := Default()
	cfg.Physics.Wiggle = true
	cfg.Style.ShowLabels = true
	cfg.Snapshot.Format = "yaml"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, snapshot.FormatYAML, got.SnapshotFormat())
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadResolvesKeymapRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[input]\nkeymap = \"keys.toml\"\n"), 0644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keys.toml"), cfg.Input.Keymap)
}

func TestFreezeOnLoad(t *testing.T) {
	tests := []struct {
		name                 string
		freeze, freezePlaced bool
		placed, want         bool
	}{
		{"placed graph freezes", false, true, true, true},
		{"unplaced graph runs", false, true, false, false},
		{"freeze_placed off", false, false, true, false},
		{"freeze wins", true, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Physics.Freeze = tt.freeze
			cfg.Physics.FreezePlaced = tt.freezePlaced
			assert.Equal(t, tt.want, cfg.FreezeOnLoad(tt.placed))
		})
	}
	assert.True(t, Default().Physics.FreezePlaced)
}

func TestMappings(t *testing.T) {
	cfg := Default()
	cfg.Physics.Freeze = true
	cfg.Physics.LinkDistance = 12

	radius := render.DefaultStyle().Radius()
	pc := cfg.PhysicsConfig(radius)
	assert.True(t, pc.Freeze)
	assert.Equal(t, 12.0, pc.LinkDistance)
	assert.NotNil(t, pc.Radius)
	n := physics.NewNode("x")
	assert.Equal(t, radius(&n), pc.Radius(&n))

	cc := cfg.ControllerConfig()
	assert.Equal(t, cfg.Input.HitRadius, cc.HitRadius)

	tr := cfg.Transform(160, 96)
	assert.Equal(t, 1.5, tr.K)
	assert.Equal(t, 80.0, tr.X)
	assert.Equal(t, 48.0, tr.Y)

	assert.Equal(t, render.DefaultStyle(), Default().RenderStyle())
}
