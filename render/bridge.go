package render

import "github.com/gdamore/tcell/v2"

// TcellToRGB converts tcell.Color to RGB
// ColorDefault maps to fallback
func TcellToRGB(c tcell.Color, fallback RGB) RGB {
	if c == tcell.ColorDefault {
		return fallback
	}
	r, g, b := c.RGB()
	if r < 0 {
		return fallback
	}
	return RGB{uint8(r), uint8(g), uint8(b)}
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}
