package render

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"wbreport/domain/table"
	"wbreport/internal/errors"
)

const maxYearTicks = 12

// canvasSize converts pixel dimensions to the vg lengths gonum/plot saves at
func (r *Renderer) canvasSize() (vg.Length, vg.Length) {
	const dpi = 96
	return vg.Length(r.width) * vg.Inch / dpi, vg.Length(r.height) * vg.Inch / dpi
}

func (r *Renderer) newPlot(spec ChartSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(15)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Legend.Top = true
	return p
}

// series groups the numeric points of t by country, in the order of spec.Countries
// (or first appearance when none are given). Missing cells produce no point.
func (r *Renderer) series(t *table.Table, spec ChartSpec) ([]string, map[string]plotter.XYs, error) {
	if t == nil {
		return nil, nil, errors.NoData("no table")
	}
	if !t.HasColumn(spec.Column) {
		return nil, nil, errors.SchemaInvalid(spec.Column)
	}

	points := make(map[string]plotter.XYs)
	var seen []string
	for i := 0; i < t.Len(); i++ {
		country := t.Value(i, table.ColumnCountryName)
		if country.IsMissing() {
			continue
		}
		year, ok := r.values.CoerceValue(t.Value(i, table.ColumnTime)).AsFloat64()
		if !ok {
			continue
		}
		v, ok := r.values.CoerceValue(t.Value(i, spec.Column)).AsFloat64()
		if !ok {
			continue
		}
		name := country.String()
		if _, ok := points[name]; !ok {
			seen = append(seen, name)
		}
		points[name] = append(points[name], plotter.XY{X: year, Y: v})
	}

	order := seen
	if len(spec.Countries) > 0 {
		order = make([]string, 0, len(spec.Countries))
		for _, c := range spec.Countries {
			if _, ok := points[c]; ok {
				order = append(order, c)
			} else {
				r.logger.Warn("[Renderer] %q has no %s values to plot", c, spec.Column)
			}
		}
	}
	for _, xys := range points {
		sort.Slice(xys, func(a, b int) bool { return xys[a].X < xys[b].X })
	}
	return order, points, nil
}

func (r *Renderer) renderLine(spec ChartSpec, t *table.Table, path string) (int, error) {
	order, points, err := r.series(t, spec)
	if err != nil {
		return 0, err
	}
	if len(order) == 0 {
		return 0, errors.NoData("line chart has no numeric points")
	}

	p := r.newPlot(spec)
	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = plot.TickerFunc(yearTicks)
	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}

	colors := spec.Palette.Colors(len(order))
	total := 0
	for i, country := range order {
		line, err := plotter.NewLine(points[country])
		if err != nil {
			return 0, err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(country, line)
		total += len(points[country])
	}

	w, h := r.canvasSize()
	if err := p.Save(w, h, path); err != nil {
		return 0, err
	}
	return total, nil
}

// yearTicks labels whole years, thinning them so at most maxYearTicks are labelled
func yearTicks(min, max float64) []plot.Tick {
	first, last := math.Ceil(min), math.Floor(max)
	if last < first {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	step := math.Ceil((last - first + 1) / maxYearTicks)
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for y := first; y <= last; y++ {
		label := ""
		if math.Mod(y-first, step) == 0 {
			label = strconv.Itoa(int(y))
		}
		ticks = append(ticks, plot.Tick{Value: y, Label: label})
	}
	return ticks
}
