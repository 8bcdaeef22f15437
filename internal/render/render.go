package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"wbreport/adapters/coercer"
	"wbreport/domain/table"
	"wbreport/internal"
	"wbreport/internal/errors"
)

// Kind selects the chart routine
type Kind string

const (
	KindLine         Kind = "line"          // one line per country over years
	KindStackedBar   Kind = "stacked_bar"   // wide input, one stacked bar per year
	KindPieByYear    Kind = "pie_years"     // slice per year for one country
	KindBar          Kind = "bar"           // bar per country for one year
	KindPieByCountry Kind = "pie_countries" // slice per country for one year
)

// ChartSpec describes one chart. Renderers read it and never modify their input data.
type ChartSpec struct {
	Kind        Kind     `json:"kind"`
	Name        string   `json:"name"` // file stem of the artifact
	Title       string   `json:"title"`
	XLabel      string   `json:"x_label,omitempty"`
	YLabel      string   `json:"y_label,omitempty"`
	LegendTitle string   `json:"legend_title,omitempty"`
	Column      string   `json:"column"`              // value column header
	Countries   []string `json:"countries,omitempty"` // series order for line charts
	Palette     Palette  `json:"palette,omitempty"`
}

// Data carries the long table or, for stacked bars, the pivoted table
type Data struct {
	Table *table.Table
	Wide  *table.Wide
}

// Artifact is one rendered file
type Artifact struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Points int    `json:"points"`
}

// Renderer writes PNG charts into an output directory
type Renderer struct {
	outDir string
	width  int
	height int
	values *coercer.NumericCoercer
	logger *internal.Logger
}

// NewRenderer creates a renderer producing width x height pixel images
func NewRenderer(outDir string, width, height int, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{
		outDir: outDir,
		width:  width,
		height: height,
		values: coercer.NewNumericCoercer(coercer.DefaultCoercionConfig()),
		logger: logger,
	}
}

// Render dispatches spec to the chart routine for its kind. An empty selection
// yields a NO_DATA error and no file.
func (r *Renderer) Render(ctx context.Context, spec ChartSpec, data Data) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, errors.InvalidInput("chart spec needs a name")
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, errors.RenderFailed(spec.Name, err)
	}
	path := filepath.Join(r.outDir, spec.Name+".png")

	var (
		points int
		err    error
	)
	switch spec.Kind {
	case KindLine:
		points, err = r.renderLine(spec, data.Table, path)
	case KindStackedBar:
		points, err = r.renderStackedBar(spec, data.Wide, path)
	case KindPieByYear:
		points, err = r.renderPie(spec, data.Table, table.ColumnTime, path)
	case KindPieByCountry:
		points, err = r.renderPie(spec, data.Table, table.ColumnCountryName, path)
	case KindBar:
		points, err = r.renderBar(spec, data.Table, path)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown chart kind %q", spec.Kind))
	}
	if err != nil {
		if errors.HasCode(err, errors.CodeNoData) {
			return nil, errors.Wrapf(err, "chart %q", spec.Name)
		}
		return nil, errors.RenderFailed(spec.Name, err)
	}

	r.logger.Info("[Renderer] %s chart %q written to %s (%d points)", spec.Kind, spec.Title, path, points)
	return &Artifact{Name: spec.Name, Kind: spec.Kind, Title: spec.Title, Path: path, Points: points}, nil
}

// labelled is one category and its numeric value
type labelled struct {
	label string
	value float64
}

// categories reads (label, value) pairs in row order, skipping rows without a number
func (r *Renderer) categories(t *table.Table, labelColumn, valueColumn string) ([]labelled, error) {
	if t == nil {
		return nil, errors.NoData("no table")
	}
	if !t.HasColumn(valueColumn) {
		return nil, errors.SchemaInvalid(valueColumn)
	}
	out := make([]labelled, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		label := t.Value(i, labelColumn)
		v, ok := r.values.CoerceValue(t.Value(i, valueColumn)).AsFloat64()
		if !ok || label.IsMissing() {
			continue
		}
		out = append(out, labelled{label: label.String(), value: v})
	}
	return out, nil
}
