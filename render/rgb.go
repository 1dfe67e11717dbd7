package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	// Clamp to not wrap on factor > 1.0
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Luma returns Rec. 601 luma in [0, 255]
// Integer math: (R*299 + G*587 + B*114) / 1000
func Luma(c RGB) uint8 {
	return uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
}

// Contrast returns black or white, whichever reads better on c
func Contrast(c RGB) RGB {
	if Luma(c) >= 128 {
		return RGBBlack
	}
	return RGBWhite
}

// LerpLab interpolates in CIE L*a*b*, which keeps highlights perceptually even
func LerpLab(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return FromColorful(a.Colorful().BlendLab(b.Colorful(), t).Clamped())
}

// Colorful converts to a go-colorful color
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts from a go-colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Hex formats c as #rrggbb
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// ParseColor parses #rgb or #rrggbb; ok is false for empty or malformed input
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, false
	}
	return FromColorful(c), true
}

// MustParseColor parses a literal color, panicking on malformed input
func MustParseColor(s string) RGB {
	c, ok := ParseColor(s)
	if !ok {
		panic("render: bad color literal " + s)
	}
	return c
}
