package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"wbreport/domain/table"
	"wbreport/internal/analysis"
	"wbreport/internal/render"
)

// Console prints previews and results as text tables
type Console struct {
	out      io.Writer
	title    *color.Color
	warn     *color.Color
	ok       *color.Color
	maxWidth int
}

// NewConsole writes to out; colour follows fatih/color's terminal detection
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:      out,
		title:    color.New(color.FgCyan, color.Bold),
		warn:     color.New(color.FgYellow),
		ok:       color.New(color.FgGreen),
		maxWidth: 40,
	}
}

// Section prints a coloured heading
func (c *Console) Section(title string) {
	c.title.Fprintf(c.out, "\n=== %s ===\n", title)
}

// Warn prints a highlighted warning line
func (c *Console) Warn(format string, args ...interface{}) {
	c.warn.Fprintf(c.out, format+"\n", args...)
}

// Preview prints the first n rows of t
func (c *Console) Preview(title string, t *table.Table, n int) {
	c.Section(fmt.Sprintf("%s (%d rows x %d columns)", title, t.Len(), t.Width()))
	head := t.Head(n)

	tw := c.newTable(append([]string{""}, c.shorten(head.Headers())...))
	for i := 0; i < head.Len(); i++ {
		row := make([]string, 0, head.Width()+1)
		row = append(row, strconv.Itoa(i))
		for _, v := range head.Row(i) {
			row = append(row, v.String())
		}
		tw.Append(row)
	}
	tw.Render()
}

// Summary prints the statistics of one column
func (c *Console) Summary(s analysis.Summary) {
	c.Section("Statistics: " + s.Column)
	tw := c.newTable([]string{"Statistic", "Value"})
	tw.AppendBulk(summaryRows(s))
	tw.Render()
	fmt.Fprintln(c.out, analysis.EstimatorNote)
}

// Artifacts prints the rendered charts and the skipped ones
func (c *Console) Artifacts(artifacts []render.Artifact, skipped []Skipped) {
	c.Section("Charts")
	tw := c.newTable([]string{"Chart", "Kind", "Points", "File"})
	for _, a := range artifacts {
		tw.Append([]string{a.Title, string(a.Kind), strconv.Itoa(a.Points), a.Path})
	}
	tw.Render()
	for _, s := range skipped {
		c.Warn("skipped %s: %s", s.Name, s.Reason)
	}
	if len(skipped) == 0 {
		c.ok.Fprintf(c.out, "%d charts written\n", len(artifacts))
	}
}

func (c *Console) newTable(header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(c.out)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	return tw
}

func (c *Console) shorten(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if r := []rune(h); len(r) > c.maxWidth {
			h = string(r[:c.maxWidth-3]) + "..."
		}
		out[i] = h
	}
	return out
}

// summaryRows lays out a summary in describe order followed by the extra moments
func summaryRows(s analysis.Summary) [][]string {
	return [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"missing", strconv.Itoa(s.Missing)},
		{"mean", formatEstimate(s.Mean)},
		{"std", formatEstimate(s.Std)},
		{"min", formatEstimate(s.Min)},
		{"25%", formatEstimate(s.Q25)},
		{"50%", formatEstimate(s.Q50)},
		{"75%", formatEstimate(s.Q75)},
		{"max", formatEstimate(s.Max)},
		{"median", formatEstimate(s.Median)},
		{"mode", formatModes(s.Modes)},
		{"skewness", formatEstimate(s.Skewness)},
		{"kurtosis", formatEstimate(s.Kurtosis)},
	}
}

func formatEstimate(e analysis.Estimate) string {
	if !e.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(e.Value, 'f', 6, 64)
}

func formatModes(modes []float64) string {
	if len(modes) == 0 {
		return "undefined"
	}
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = strconv.FormatFloat(m, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
