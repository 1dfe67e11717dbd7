// Package config loads the TOML settings file and maps it onto the runtime types
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKey is returned for keys the config file does not define
var ErrUnknownKey = errors.New("unknown config key")

// Config is the on-disk settings file
type Config struct {
	Physics  Physics  `toml:"physics"`
	Style    Style    `toml:"style"`
	View     View     `toml:"view"`
	Input    Input    `toml:"input"`
	Audio    Audio    `toml:"audio"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Physics mirrors physics.Config
type Physics struct {
	Charge               float64 `toml:"charge"`
	Gravity              float64 `toml:"gravity"`
	LinkDistance         float64 `toml:"link_distance"`
	LinkStrengthExponent float64 `toml:"link_strength_exponent"`
	Theta                float64 `toml:"theta"`
	DistanceMin          float64 `toml:"distance_min"`
	DistanceMax          float64 `toml:"distance_max"`
	Centering            bool    `toml:"centering"`
	Collision            bool    `toml:"collision"`
	CollisionStrength    float64 `toml:"collision_strength"`
	VelocityDecay        float64 `toml:"velocity_decay"`
	AlphaMin             float64 `toml:"alpha_min"`
	AlphaDecay           float64 `toml:"alpha_decay"`
	Wiggle               bool    `toml:"wiggle"`
	Freeze               bool    `toml:"freeze"`
	FreezePlaced         bool    `toml:"freeze_placed"` // freeze graphs whose nodes all carry positions
	Seed                 uint64  `toml:"seed"`
	InitialSpread        float64 `toml:"initial_spread"`
}

// Style mirrors render.Style with colors as hex strings
type Style struct {
	Background string `toml:"background"`
	NodeFill   string `toml:"node_fill"`
	NodeStroke string `toml:"node_stroke"`
	LinkColor  string `toml:"link_color"`
	LabelColor string `toml:"label_color"`
	HoverColor string `toml:"hover_color"`

	NodeSize         float64 `toml:"node_size"`
	NodeStrokeWidth  float64 `toml:"node_stroke_width"`
	NodeSizeExponent float64 `toml:"node_size_exponent"`
	ScaleByDegree    bool    `toml:"scale_by_degree"`

	LinkWidth         float64 `toml:"link_width"`
	LinkWidthExponent float64 `toml:"link_width_exponent"`
	LinkAlpha         float64 `toml:"link_alpha"`

	ShowLabels   bool    `toml:"show_labels"`
	LabelMinSize float64 `toml:"label_min_size"`
	LabelMaxSize float64 `toml:"label_max_size"`

	MinWeightPercent float64 `toml:"min_weight_percent"`
	MaxWeightPercent float64 `toml:"max_weight_percent"`
}

// View holds viewport and frame pacing settings
type View struct {
	Zoom      float64 `toml:"zoom"`
	FPS       int     `toml:"fps"`
	FitOnLoad bool    `toml:"fit_on_load"`
	Padding   float64 `toml:"padding"` // dots kept free around a fitted graph
}

// Input holds pointer tuning and the optional key map file
type Input struct {
	HitRadius   float64 `toml:"hit_radius"`
	HoverRadius float64 `toml:"hover_radius"`
	ZoomStep    float64 `toml:"zoom_step"`
	Keymap      string  `toml:"keymap"`
}

// Audio toggles tone cues
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Level   float64 `toml:"level"`
}

// Snapshot sets where the snapshot key writes
type Snapshot struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// DefaultPath returns $XDG_CONFIG_HOME/forcegraph/config.toml or its platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "forcegraph.toml"
	}
	return filepath.Join(dir, "forcegraph", "config.toml")
}

// Load reads path over the defaults and clamps the result
// A missing file is not an error when optional is set
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("load config %s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}

	// Relative keymap paths resolve against the config file
	if cfg.Input.Keymap != "" && !filepath.IsAbs(cfg.Input.Keymap) {
		cfg.Input.Keymap = filepath.Join(filepath.Dir(path), cfg.Input.Keymap)
	}
	return cfg.Clamp(), nil
}

// Decode parses TOML text over the defaults
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("decode config: %w: %s", ErrUnknownKey, undecoded[0])
	}
	return cfg.Clamp(), nil
}

// Save writes cfg to path, creating parent directories
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return f.Close()
}
