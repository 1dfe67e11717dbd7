package config

import (
	"log"
	"math"

	"github.com/lixenwraith/forcegraph/input"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/render"
	"github.com/lixenwraith/forcegraph/snapshot"
	"github.com/lixenwraith/forcegraph/viewport"
	"github.com/lixenwraith/forcegraph/vmath"
)

// Frame pacing bounds
const (
	DefaultFPS = 30
	MinFPS     = 1
	MaxFPS     = 120
)

// Default returns the built-in settings
func Default() Config {
	p := physics.DefaultConfig()
	s := render.DefaultStyle()
	c := input.DefaultControllerConfig()

	return Config{
		Physics: Physics{
			Charge:               p.Charge,
			Gravity:              p.Gravity,
			LinkDistance:         p.LinkDistance,
			LinkStrengthExponent: p.LinkStrengthExponent,
			Theta:                p.Theta,
			DistanceMin:          p.DistanceMin,
			DistanceMax:          p.DistanceMax,
			Centering:            p.Centering,
			Collision:            p.Collision,
			CollisionStrength:    p.CollisionStrength,
			VelocityDecay:        p.VelocityDecay,
			AlphaMin:             p.AlphaMin,
			AlphaDecay:           p.AlphaDecay,
			FreezePlaced:         true,
			Seed:                 p.Seed,
		},
		Style: Style{
			Background:        s.Background.Hex(),
			NodeFill:          s.NodeFill.Hex(),
			NodeStroke:        s.NodeStroke.Hex(),
			LinkColor:         s.LinkColor.Hex(),
			LabelColor:        s.LabelColor.Hex(),
			HoverColor:        s.HoverColor.Hex(),
			NodeSize:          s.NodeSize,
			NodeStrokeWidth:   s.NodeStrokeWidth,
			NodeSizeExponent:  s.NodeSizeExponent,
			LinkWidth:         s.LinkWidth,
			LinkWidthExponent: s.LinkWidthExponent,
			LinkAlpha:         s.LinkAlpha,
			LabelMinSize:      s.LabelMinSize,
			LabelMaxSize:      s.LabelMaxSize,
			MinWeightPercent:  s.MinWeightPercent,
			MaxWeightPercent:  s.MaxWeightPercent,
		},
		View: View{
			Zoom:      1.5,
			FPS:       DefaultFPS,
			FitOnLoad: true,
			Padding:   4,
		},
		Input: Input{
			HitRadius:   c.HitRadius,
			HoverRadius: c.HoverRadius,
			ZoomStep:    c.ZoomStep,
		},
		Audio: Audio{
			Enabled: false,
			Level:   0.25,
		},
		Snapshot: Snapshot{
			Dir:    ".",
			Format: snapshot.FormatJSON.String(),
		},
	}
}

// Clamp returns c with every value inside its valid range
// Out-of-range numbers are clamped and malformed colors fall back to the default, silently
func (c Config) Clamp() Config {
	d := Default()

	p := &c.Physics
	p.Charge = finiteOr(p.Charge, d.Physics.Charge)
	p.Gravity = math.Max(finiteOr(p.Gravity, d.Physics.Gravity), 0)
	p.LinkDistance = positiveOr(p.LinkDistance, d.Physics.LinkDistance)
	p.LinkStrengthExponent = finiteOr(p.LinkStrengthExponent, d.Physics.LinkStrengthExponent)
	p.Theta = positiveOr(p.Theta, d.Physics.Theta)
	p.DistanceMin = positiveOr(p.DistanceMin, d.Physics.DistanceMin)
	p.DistanceMax = math.Max(finiteOr(p.DistanceMax, 0), 0)
	p.CollisionStrength = vmath.Clamp(positiveOr(p.CollisionStrength, d.Physics.CollisionStrength), 0, 1)
	p.VelocityDecay = vmath.Clamp(finiteOr(p.VelocityDecay, d.Physics.VelocityDecay), 0, 1)
	p.AlphaMin = vmath.Clamp(positiveOr(p.AlphaMin, d.Physics.AlphaMin), vmath.Epsilon, 1)
	if !(p.AlphaDecay > 0 && p.AlphaDecay < 1) {
		p.AlphaDecay = d.Physics.AlphaDecay
	}
	p.InitialSpread = math.Max(finiteOr(p.InitialSpread, 0), 0)

	s := &c.Style
	s.Background = colorOr(s.Background, d.Style.Background)
	s.NodeFill = colorOr(s.NodeFill, d.Style.NodeFill)
	s.NodeStroke = colorOr(s.NodeStroke, d.Style.NodeStroke)
	s.LinkColor = colorOr(s.LinkColor, d.Style.LinkColor)
	s.LabelColor = colorOr(s.LabelColor, d.Style.LabelColor)
	s.HoverColor = colorOr(s.HoverColor, d.Style.HoverColor)
	s.NodeSize = positiveOr(s.NodeSize, d.Style.NodeSize)
	s.NodeStrokeWidth = math.Max(finiteOr(s.NodeStrokeWidth, d.Style.NodeStrokeWidth), 0)
	s.NodeSizeExponent = finiteOr(s.NodeSizeExponent, d.Style.NodeSizeExponent)
	s.LinkWidth = positiveOr(s.LinkWidth, d.Style.LinkWidth)
	s.LinkWidthExponent = finiteOr(s.LinkWidthExponent, d.Style.LinkWidthExponent)
	s.LinkAlpha = vmath.Clamp(finiteOr(s.LinkAlpha, d.Style.LinkAlpha), 0, 1)
	s.LabelMinSize = positiveOr(s.LabelMinSize, d.Style.LabelMinSize)
	s.LabelMaxSize = math.Max(finiteOr(s.LabelMaxSize, d.Style.LabelMaxSize), s.LabelMinSize)
	s.MinWeightPercent = vmath.Clamp(finiteOr(s.MinWeightPercent, 0), 0, 100)
	s.MaxWeightPercent = vmath.Clamp(finiteOr(s.MaxWeightPercent, 100), s.MinWeightPercent, 100)

	v := &c.View
	v.Zoom = vmath.Clamp(positiveOr(v.Zoom, d.View.Zoom), viewport.MinScale, viewport.MaxScale)
	v.FPS = min(max(v.FPS, MinFPS), MaxFPS)
	v.Padding = math.Max(finiteOr(v.Padding, d.View.Padding), 0)

	in := &c.Input
	in.HitRadius = positiveOr(in.HitRadius, d.Input.HitRadius)
	in.HoverRadius = positiveOr(in.HoverRadius, d.Input.HoverRadius)
	if !(in.ZoomStep > 1) || math.IsInf(in.ZoomStep, 0) {
		in.ZoomStep = d.Input.ZoomStep
	}

	c.Audio.Level = vmath.Clamp(finiteOr(c.Audio.Level, d.Audio.Level), 0, 1)

	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = d.Snapshot.Dir
	}
	if _, err := snapshot.ParseFormat(c.Snapshot.Format); err != nil {
		log.Printf("config: %v, using %s", err, d.Snapshot.Format)
		c.Snapshot.Format = d.Snapshot.Format
	}
	return c
}

func finiteOr(v, fallback float64) float64 {
	if !vmath.Finite(v) {
		return fallback
	}
	return v
}

func positiveOr(v, fallback float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return fallback
	}
	return v
}

func colorOr(s, fallback string) string {
	c, ok := render.ParseColor(s)
	if !ok {
		log.Printf("config: bad color %q, using %s", s, fallback)
		return fallback
	}
	return c.Hex()
}

// PhysicsConfig maps the physics section; radius drives collision
func (c Config) PhysicsConfig(radius physics.RadiusFunc) physics.Config {
	p := c.Physics
	return physics.Config{
		LinkDistance:         p.LinkDistance,
		LinkStrengthExponent: p.LinkStrengthExponent,
		Charge:               p.Charge,
		Theta:                p.Theta,
		DistanceMin:          p.DistanceMin,
		DistanceMax:          p.DistanceMax,
		Centering:            p.Centering,
		Gravity:              p.Gravity,
		Collision:            p.Collision,
		CollisionStrength:    p.CollisionStrength,
		Radius:               radius,
		VelocityDecay:        p.VelocityDecay,
		AlphaMin:             p.AlphaMin,
		AlphaDecay:           p.AlphaDecay,
		Freeze:               p.Freeze,
		Wiggle:               p.Wiggle,
		Seed:                 p.Seed,
		InitialSpread:        p.InitialSpread,
	}
}

// FreezeOnLoad reports whether a graph starts frozen; placed is set when every node carries a position
func (c Config) FreezeOnLoad(placed bool) bool {
	return c.Physics.Freeze || (placed && c.Physics.FreezePlaced)
}

// RenderStyle maps the style section
func (c Config) RenderStyle() render.Style {
	s := c.Style
	d := render.DefaultStyle()
	col := func(hex string, fallback render.RGB) render.RGB {
		if rgb, ok := render.ParseColor(hex); ok {
			return rgb
		}
		return fallback
	}
	return render.Style{
		Background:        col(s.Background, d.Background),
		NodeFill:          col(s.NodeFill, d.NodeFill),
		NodeStroke:        col(s.NodeStroke, d.NodeStroke),
		LinkColor:         col(s.LinkColor, d.LinkColor),
		LabelColor:        col(s.LabelColor, d.LabelColor),
		HoverColor:        col(s.HoverColor, d.HoverColor),
		NodeStrokeWidth:   s.NodeStrokeWidth,
		NodeSize:          s.NodeSize,
		NodeSizeExponent:  s.NodeSizeExponent,
		ScaleByDegree:     s.ScaleByDegree,
		LinkWidth:         s.LinkWidth,
		LinkWidthExponent: s.LinkWidthExponent,
		LinkAlpha:         s.LinkAlpha,
		ShowLabels:        s.ShowLabels,
		LabelMinSize:      s.LabelMinSize,
		LabelMaxSize:      s.LabelMaxSize,
		MinWeightPercent:  s.MinWeightPercent,
		MaxWeightPercent:  s.MaxWeightPercent,
	}.Normalized()
}

// ControllerConfig maps the input section
func (c Config) ControllerConfig() input.ControllerConfig {
	return input.ControllerConfig{
		HitRadius:   c.Input.HitRadius,
		HoverRadius: c.Input.HoverRadius,
		ZoomStep:    c.Input.ZoomStep,
	}
}

// Transform returns the initial view: configured zoom with the world origin at the canvas center
func (c Config) Transform(width, height float64) viewport.Transform {
	return viewport.Transform{K: c.View.Zoom, X: width / 2, Y: height / 2}.Clamped()
}

// SnapshotFormat returns the configured export format
func (c Config) SnapshotFormat() snapshot.Format {
	f, err := snapshot.ParseFormat(c.Snapshot.Format)
	if err != nil {
		return snapshot.FormatJSON
	}
	return f
}
