package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type stop struct {
	col colorful.Color
	pos float64
}

// viridis is the heatmap colour scale, dark purple (low) to yellow (high).
var viridis = []stop{
	{rgb(0x44, 0x01, 0x54), 0.00},
	{rgb(0x3b, 0x52, 0x8b), 0.25},
	{rgb(0x21, 0x91, 0x8c), 0.50},
	{rgb(0x5e, 0xc9, 0x62), 0.75},
	{rgb(0xfd, 0xe7, 0x25), 1.00},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// scaleColor maps t in [0, 1] onto the colour scale.
func scaleColor(t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	for i := 0; i < len(viridis)-1; i++ {
		lo, hi := viridis[i], viridis[i+1]
		if t <= hi.pos {
			return lo.col.BlendLab(hi.col, (t-lo.pos)/(hi.pos-lo.pos)).Clamped()
		}
	}
	return viridis[len(viridis)-1].col
}

// valueColor places v between lo and hi on the colour scale. A flat range
// maps to the middle.
func valueColor(v, lo, hi float64) colorful.Color {
	if hi <= lo {
		return scaleColor(0.5)
	}
	return scaleColor((v - lo) / (hi - lo))
}

// seriesColor picks n evenly spaced colours from the scale.
func seriesColor(i, n int) colorful.Color {
	if n <= 1 {
		return scaleColor(0.35)
	}
	return scaleColor(0.85 * float64(i) / float64(n-1))
}

// isLight reports whether dark text reads better on c.
func isLight(c colorful.Color) bool {
	l, _, _ := c.Lab()
	return l > 0.6
}
