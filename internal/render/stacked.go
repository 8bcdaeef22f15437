package render

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"wbreport/domain/table"
	"wbreport/internal/errors"
)

const maxBarWidth = 60

// renderStackedBar draws one bar per index key of wide, stacking one segment per
// column in column order. Missing cells contribute a zero-height segment.
func (r *Renderer) renderStackedBar(spec ChartSpec, wide *table.Wide, path string) (int, error) {
	if wide == nil || wide.Empty() {
		return 0, errors.NoData("stacked bar has no pivoted data")
	}

	present := 0
	series := make([]plotter.Values, len(wide.ColumnKeys))
	for c, country := range wide.ColumnKeys {
		series[c] = make(plotter.Values, len(wide.RowKeys))
		for row, year := range wide.RowKeys {
			if v, ok := wide.Cell(year, country).AsFloat64(); ok {
				series[c][row] = v
				present++
			}
		}
	}
	if present == 0 {
		return 0, errors.NoData("stacked bar has only missing cells")
	}

	p := r.newPlot(spec)
	p.Add(plotter.NewGrid())
	p.NominalX(wide.RowKeys...)
	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}

	w, h := r.canvasSize()
	barWidth := w * 0.6 / vg.Length(len(wide.RowKeys))
	if barWidth > vg.Points(maxBarWidth) {
		barWidth = vg.Points(maxBarWidth)
	}

	colors := spec.Palette.Colors(len(wide.ColumnKeys))
	var below *plotter.BarChart
	for c, name := range wide.ColumnKeys {
		bars, err := plotter.NewBarChart(series[c], barWidth)
		if err != nil {
			return 0, err
		}
		bars.Color = colors[c]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(name, bars)
		below = bars
	}

	if err := p.Save(w, h, path); err != nil {
		return 0, err
	}
	return present, nil
}
