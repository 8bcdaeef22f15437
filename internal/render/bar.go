package render

import (
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"wbreport/domain/table"
	"wbreport/internal/errors"
)

const titleFontSize = 17

// renderBar draws one bar per row, labelled by country, coloured by spec.Palette
func (r *Renderer) renderBar(spec ChartSpec, t *table.Table, path string) (int, error) {
	items, err := r.categories(t, table.ColumnCountryName, spec.Column)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, errors.NoData("bar chart has no numeric values")
	}

	colors := spec.Palette.Colors(len(items))
	bars := make([]chart.Value, len(items))
	lowest, highest := 0.0, 0.0
	for i, it := range items {
		bars[i] = chart.Value{
			Label: it.label,
			Value: it.value,
			Style: chart.Style{FillColor: colors[i], StrokeColor: colors[i], StrokeWidth: 1},
		}
		lowest = math.Min(lowest, it.value)
		highest = math.Max(highest, it.value)
	}
	if lowest == highest {
		highest = 1
	}

	graph := chart.BarChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth(r.width, len(bars)),
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          &chart.ContinuousRange{Min: lowest, Max: highest},
			ValueFormatter: compactNumber,
		},
		UseBaseValue: lowest < 0,
		BaseValue:    0,
		Bars:         bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return 0, err
	}
	return len(items), f.Close()
}

// barWidth spreads n bars over roughly two thirds of the canvas
func barWidth(width, n int) int {
	w := width * 2 / 3 / n
	switch {
	case w < 8:
		return 8
	case w > 80:
		return 80
	}
	return w
}

// compactNumber formats axis values with K/M/B/T suffixes
func compactNumber(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	abs := math.Abs(f)
	for _, unit := range []struct {
		size   float64
		suffix string
	}{{1e12, "T"}, {1e9, "B"}, {1e6, "M"}, {1e3, "K"}} {
		if abs >= unit.size {
			return fmt.Sprintf("%.1f%s", f/unit.size, unit.suffix)
		}
	}
	return fmt.Sprintf("%.1f", f)
}
