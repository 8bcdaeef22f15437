package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette names a colour sequence
type Palette string

const (
	PaletteTab10   Palette = "tab10"
	PaletteViridis Palette = "viridis"
)

var tab10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// viridis sampled at 0.0, 0.1, ... 1.0
var viridisStops = []string{
	"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
	"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725",
}

// Colors returns n colours. Categorical palettes cycle; viridis is sampled at
// n evenly spaced interior points so no two bars share the map's end colours.
func (p Palette) Colors(n int) []drawing.Color {
	if n <= 0 {
		return nil
	}
	out := make([]drawing.Color, n)
	switch p {
	case PaletteViridis:
		for i := range out {
			out[i] = viridisAt(float64(i+1) / float64(n+1))
		}
	default:
		for i := range out {
			out[i] = drawing.ColorFromHex(tab10[i%len(tab10)])
		}
	}
	return out
}

// viridisAt interpolates the colour map at pos in [0, 1]
func viridisAt(pos float64) drawing.Color {
	if pos <= 0 {
		return drawing.ColorFromHex(viridisStops[0])
	}
	last := len(viridisStops) - 1
	if pos >= 1 {
		return drawing.ColorFromHex(viridisStops[last])
	}
	scaled := pos * float64(last)
	i := int(scaled)
	frac := scaled - float64(i)
	a := drawing.ColorFromHex(viridisStops[i])
	b := drawing.ColorFromHex(viridisStops[i+1])
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + frac*(float64(y)-float64(x)) + 0.5)
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
