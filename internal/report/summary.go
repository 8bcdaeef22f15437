package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/samber/lo"

	"wbreport/internal/analysis"
	"wbreport/internal/errors"
	"wbreport/internal/render"
)

const reportTitle = "World Bank indicator report"

// SummaryFiles are the paths written by WriteSummary
type SummaryFiles struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Manifest string `json:"manifest"`
}

// Manifest is the machine-readable record of a run
type Manifest struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	Dataset    DatasetInfo       `json:"dataset"`
	Statistics analysis.Summary  `json:"statistics"`
	Estimators string            `json:"estimators"`
	Artifacts  []render.Artifact `json:"artifacts"`
	Skipped    []Skipped         `json:"skipped"`
	Warnings   []string          `json:"warnings"`
}

// DatasetInfo describes the loaded file
type DatasetInfo struct {
	Path         string `json:"path"`
	SHA256       string `json:"sha256,omitempty"`
	Rows         int    `json:"rows"`
	Columns      int    `json:"columns"`
	CompleteRows int    `json:"complete_rows"`
}

// WriteSummary writes report.md, report.html and manifest.json into dir.
// Chart links are relative to dir.
func WriteSummary(dir string, res *Result) (*SummaryFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}
	files := &SummaryFiles{
		Markdown: filepath.Join(dir, "report.md"),
		HTML:     filepath.Join(dir, "report.html"),
		Manifest: filepath.Join(dir, "manifest.json"),
	}

	md := RenderMarkdown(res)
	if err := os.WriteFile(files.Markdown, md, 0o644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", files.Markdown)
	}
	if err := os.WriteFile(files.HTML, RenderHTML(md), 0o644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", files.HTML)
	}

	manifest, err := json.MarshalIndent(BuildManifest(res), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding manifest")
	}
	if err := os.WriteFile(files.Manifest, manifest, 0o644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", files.Manifest)
	}
	return files, nil
}

// BuildManifest collects the run record with artifact paths made relative
func BuildManifest(res *Result) Manifest {
	m := Manifest{
		RunID:      res.RunID.String(),
		StartedAt:  res.StartedAt,
		Dataset:    DatasetInfo{Path: res.DatasetPath, SHA256: res.DatasetHash.String()},
		Statistics: res.Summary,
		Estimators: analysis.EstimatorNote,
		Artifacts: lo.Map(res.Artifacts, func(a render.Artifact, _ int) render.Artifact {
			a.Path = filepath.Base(a.Path)
			return a
		}),
		Skipped:  lo.Ternary(res.Skipped == nil, []Skipped{}, res.Skipped),
		Warnings: lo.Ternary(res.Warnings == nil, []string{}, res.Warnings),
	}
	if res.Frames != nil {
		m.Dataset.Rows = res.Frames.Raw.Len()
		m.Dataset.Columns = res.Frames.Raw.Width()
		m.Dataset.CompleteRows = res.Frames.Cleaned.Len()
	}
	return m
}

// RenderMarkdown lays out the statistics table, the charts and any warnings
func RenderMarkdown(res *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "Run `%s` started %s from `%s`", res.RunID, res.StartedAt.Format(time.RFC3339), res.DatasetPath)
	if !res.DatasetHash.IsEmpty() {
		fmt.Fprintf(&b, " (sha256 `%s`)", res.DatasetHash.Short())
	}
	if res.Frames != nil {
		fmt.Fprintf(&b, " (%d rows, %d complete)", res.Frames.Raw.Len(), res.Frames.Cleaned.Len())
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "## Statistics: %s\n\n", res.Summary.Column)
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	for _, row := range summaryRows(res.Summary) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}
	fmt.Fprintf(&b, "\n_%s_\n\n", analysis.EstimatorNote)

	b.WriteString("## Charts\n\n")
	for _, a := range res.Artifacts {
		fmt.Fprintf(&b, "### %s\n\n![%s](%s)\n\n", a.Title, a.Title, filepath.Base(a.Path))
	}

	if len(res.Skipped) > 0 {
		b.WriteString("## Skipped charts\n\n")
		for _, s := range res.Skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", s.Name, s.Reason)
		}
		b.WriteString("\n")
	}
	if len(res.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// RenderHTML converts the Markdown report to a complete HTML page
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
		Title: reportTitle,
	})
	return markdown.ToHTML(md, p, r)
}
