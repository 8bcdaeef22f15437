package report

import (
	"context"
	"io"
	"time"

	"wbreport/adapters/coercer"
	"wbreport/domain/core"
	"wbreport/domain/indicator"
	"wbreport/domain/table"
	"wbreport/internal"
	"wbreport/internal/analysis"
	"wbreport/internal/config"
	"wbreport/internal/dataset"
	"wbreport/internal/errors"
	"wbreport/internal/render"
)

// Skipped records a chart that had nothing to draw
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is everything one run produced
type Result struct {
	RunID       core.RunID
	StartedAt   time.Time
	DatasetPath string
	DatasetHash core.Hash
	Frames      *dataset.Frames
	Summary     analysis.Summary
	Artifacts   []render.Artifact
	Skipped     []Skipped
	Warnings    []string
	Files       *SummaryFiles
}

// Pipeline threads the loaded tables through statistics and the chart plans
type Pipeline struct {
	cfg      *config.Config
	loader   *dataset.Loader
	coercer  *coercer.NumericCoercer
	renderer *render.Renderer
	console  *Console
	logger   *internal.Logger
}

// NewPipeline wires the stages from cfg; console output goes to out
func NewPipeline(cfg *config.Config, out io.Writer, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{
		cfg:      cfg,
		loader:   dataset.NewLoader(logger, cfg.Data.MissingTokens...),
		coercer:  coercer.NewNumericCoercer(coercer.CoercionConfig{Lenient: cfg.Data.Lenient}),
		renderer: render.NewRenderer(cfg.Charts.OutputDir, cfg.Charts.Width, cfg.Charts.Height, logger),
		console:  NewConsole(out),
		logger:   logger,
	}
}

// Preview loads the dataset and prints the head of each derived table
func (p *Pipeline) Preview(ctx context.Context) (*dataset.Frames, error) {
	frames, err := p.loader.Load(ctx, p.cfg.Data.DatasetPath)
	if err != nil {
		return nil, err
	}
	p.preview(frames)
	return frames, nil
}

// Describe loads the dataset and prints the statistics of one indicator
func (p *Pipeline) Describe(ctx context.Context, key indicator.Key) (analysis.Summary, error) {
	ind, ok := indicator.Lookup(key)
	if !ok {
		return analysis.Summary{}, errors.InvalidInput("unknown indicator " + string(key))
	}
	frames, err := p.loader.Load(ctx, p.cfg.Data.DatasetPath, ind.Column())
	if err != nil {
		return analysis.Summary{}, err
	}
	summary, err := analysis.DescribeColumn(frames.Transposed, ind.Column(), p.coercer)
	if err != nil {
		return analysis.Summary{}, err
	}
	p.console.Summary(summary)
	return summary, nil
}

// Run executes the full report: load, preview, statistics, every plan in
// order, then the summary files. A plan with nothing to draw is skipped with
// a warning; any other failure stops the run.
func (p *Pipeline) Run(ctx context.Context, plans []Plan) (*Result, error) {
	res := &Result{
		RunID:       core.NewRunID(),
		StartedAt:   time.Now().UTC(),
		DatasetPath: p.cfg.Data.DatasetPath,
	}
	p.logger.Info("[Pipeline] run %s started with %d plans", res.RunID, len(plans))

	frames, err := p.loader.Load(ctx, res.DatasetPath, RequiredColumns(plans)...)
	if err != nil {
		return nil, err
	}
	res.Frames = frames
	p.preview(frames)

	res.Warnings = CheckCountries(frames.Transposed, plans)
	for _, w := range res.Warnings {
		p.logger.Warn("[Pipeline] %s", w)
	}

	described := indicator.MustLookup(DescribedIndicator).Column()
	res.Summary, err = analysis.DescribeColumn(frames.Transposed, described, p.coercer)
	if err != nil {
		return nil, err
	}
	p.console.Summary(res.Summary)

	// Plans see the described indicator and Time as numbers, so a cell that
	// failed to parse counts as missing when a plan drops incomplete rows.
	numeric, err := p.coercer.CoerceColumns(frames.Transposed, described, table.ColumnTime)
	if err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artifact, err := p.Execute(ctx, numeric, plan)
		if err != nil {
			if errors.HasCode(err, errors.CodeNoData) {
				p.logger.Warn("[Pipeline] skipping %s: %v", plan.Chart.Name, err)
				res.Skipped = append(res.Skipped, Skipped{Name: plan.Chart.Name, Reason: err.Error()})
				continue
			}
			p.logger.Error("[Pipeline] %s failed: %v", plan.Chart.Name, err)
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, *artifact)
	}
	p.console.Artifacts(res.Artifacts, res.Skipped)

	if hash, err := core.FileHash(res.DatasetPath); err == nil {
		res.DatasetHash = hash
		p.logger.Debug("[Pipeline] dataset fingerprint %s", hash.Short())
	} else {
		p.logger.Warn("[Pipeline] could not fingerprint %s: %v", res.DatasetPath, err)
	}

	res.Files, err = WriteSummary(p.cfg.Charts.OutputDir, res)
	if err != nil {
		return nil, err
	}
	p.logger.Info("[Pipeline] run %s finished: %d charts, %d skipped, report at %s",
		res.RunID, len(res.Artifacts), len(res.Skipped), res.Files.Markdown)
	return res, nil
}

// Execute selects, shapes and renders one plan from t, which is not modified
func (p *Pipeline) Execute(ctx context.Context, t *table.Table, plan Plan) (*render.Artifact, error) {
	ind, ok := indicator.Lookup(plan.Indicator)
	if !ok {
		return nil, errors.InvalidInput("unknown indicator " + string(plan.Indicator))
	}
	spec := plan.Chart
	if spec.Column == "" {
		spec.Column = ind.Column()
	}

	selected := dataset.Filter(t, plan.Selection)
	if plan.DropIncomplete {
		selected = selected.DropIncomplete()
	}
	selected, err := p.coercer.CoerceColumns(selected, table.ColumnTime, spec.Column)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("[Pipeline] %s: %d rows selected (%s)", spec.Name, selected.Len(), ind.Key)

	data := render.Data{Table: selected}
	if plan.Pivot {
		data.Wide, err = dataset.Pivot(selected, table.ColumnTime, table.ColumnCountryName, spec.Column, p.coercer)
		if err != nil {
			return nil, err
		}
	}
	return p.renderer.Render(ctx, spec, data)
}

func (p *Pipeline) preview(frames *dataset.Frames) {
	n := p.cfg.Console.PreviewRows
	p.console.Preview("Transposed (by country)", frames.Transposed, n)
	p.console.Preview("Raw (as loaded)", frames.Raw, n)
	p.console.Preview("Cleaned", frames.Cleaned, n)
}
