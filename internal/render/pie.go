package render

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"wbreport/domain/table"
	"wbreport/internal/errors"
)

// renderPie draws one slice per row labelled by labelColumn, annotated with its
// share to one decimal place. Slices without a positive value are left out.
func (r *Renderer) renderPie(spec ChartSpec, t *table.Table, labelColumn, path string) (int, error) {
	items, err := r.categories(t, labelColumn, spec.Column)
	if err != nil {
		return 0, err
	}

	if len(items) == 0 {
		return 0, errors.NoData("pie chart has no rows")
	}

	total := 0.0
	positive := items[:0:0]
	for _, it := range items {
		if it.value > 0 {
			positive = append(positive, it)
			total += it.value
		} else {
			r.logger.Debug("[Renderer] pie %q skips %s (%g)", spec.Name, it.label, it.value)
		}
	}
	if len(positive) == 0 {
		return 0, errors.NoData("pie chart has no positive values")
	}

	colors := spec.Palette.Colors(len(positive))
	slices := make([]chart.Value, len(positive))
	for i, it := range positive {
		slices[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", it.label, it.value/total*100),
			Value: it.value,
			Style: chart.Style{FillColor: colors[i], StrokeColor: chart.ColorWhite, StrokeWidth: 1},
		}
	}

	graph := chart.PieChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		Values:     slices,
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return 0, err
	}
	return len(positive), f.Close()
}
