package charts

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"unemploycli/internal/analysis"
	apperrors "unemploycli/internal/errors"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow}

// TerminalRenderer draws charts as text on w
type TerminalRenderer struct {
	w      io.Writer
	width  int
	height int

	title lipgloss.Style
	bar   lipgloss.Style
	box   lipgloss.Style
	muted lipgloss.Style
}

// NewTerminalRenderer creates a renderer drawing on w. width is the plot
// area in columns and height the line chart height in rows.
func NewTerminalRenderer(w io.Writer, width, height int) *TerminalRenderer {
	r := lipgloss.NewRenderer(w)
	return &TerminalRenderer{
		w:      w,
		width:  width,
		height: height,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		bar:    r.NewStyle().Foreground(lipgloss.Color("4")),
		box:    r.NewStyle().Foreground(lipgloss.Color("5")),
		muted:  r.NewStyle().Faint(true),
	}
}

// RenderLine draws every series on one asciigraph plot. Series are aligned
// on a shared timeline so a later series starts where the earlier one ends.
func (t *TerminalRenderer) RenderLine(_ context.Context, c LineChart) error {
	data := alignSeries(c.Series)
	if len(data) == 0 {
		return t.write(c.Name, t.header(c.Title)+t.muted.Render("(no data)")+"\n\n")
	}

	opts := []asciigraph.Option{
		asciigraph.Height(t.height),
		asciigraph.Precision(1),
		asciigraph.Caption(c.YLabel + " by " + strings.ToLower(c.XLabel)),
	}
	if len(data[0]) > t.width {
		opts = append(opts, asciigraph.Width(t.width))
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesColors(seriesColors[:min(len(data), len(seriesColors))]...))
	}

	var b strings.Builder
	b.WriteString(t.header(c.Title))
	b.WriteString(asciigraph.PlotMany(data, opts...))
	b.WriteString("\n")
	if c.Legend {
		labels := make([]string, 0, len(c.Series))
		for i, s := range c.Series {
			labels = append(labels, fmt.Sprintf("[%d] %s", i+1, s.Label))
		}
		b.WriteString(t.muted.Render(strings.Join(labels, "  ")))
		b.WriteString("\n")
	}
	if first, last, ok := span(c.Series); ok {
		b.WriteString(t.muted.Render(fmt.Sprintf("%s .. %s", first, last)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return t.write(c.Name, b.String())
}

// RenderBar draws one horizontal bar per category, scaled to the widest
func (t *TerminalRenderer) RenderBar(_ context.Context, c BarChart) error {
	var b strings.Builder
	b.WriteString(t.header(c.Title))

	maxValue, labelWidth := 0.0, len(c.XLabel)
	for _, bar := range c.Bars {
		maxValue = math.Max(maxValue, bar.Value)
		labelWidth = max(labelWidth, len(bar.Label))
	}

	for _, bar := range c.Bars {
		n := 0
		if maxValue > 0 && bar.Value > 0 {
			n = int(math.Round(bar.Value / maxValue * float64(t.width)))
		}
		fmt.Fprintf(&b, "%*s │%s %.2f\n", labelWidth, bar.Label, t.bar.Render(strings.Repeat("█", n)), bar.Value)
	}
	b.WriteString(t.muted.Render(fmt.Sprintf("%*s   %s", labelWidth, c.XLabel, c.YLabel)))
	b.WriteString("\n\n")

	return t.write(c.Name, b.String())
}

// RenderBox draws one five-number summary row per group on a shared scale
func (t *TerminalRenderer) RenderBox(_ context.Context, c BoxChart) error {
	var b strings.Builder
	b.WriteString(t.header(c.Title))

	var dists []analysis.RegionDistribution
	lo, hi := math.Inf(1), math.Inf(-1)
	labelWidth := 0
	for _, g := range c.Groups {
		if len(g.Values) == 0 {
			continue
		}
		d := analysis.Distribution(g.Label, g.Values)
		dists = append(dists, d)
		lo, hi = math.Min(lo, d.Min), math.Max(hi, d.Max)
		labelWidth = max(labelWidth, len(g.Label))
	}

	for _, d := range dists {
		row := boxRow(d, lo, hi, t.width)
		fmt.Fprintf(&b, "%*s %s  min %.2f  q1 %.2f  median %.2f  q3 %.2f  max %.2f",
			labelWidth, d.Region, t.box.Render(row), d.Min, d.Q1, d.Median, d.Q3, d.Max)
		if d.Outliers > 0 {
			fmt.Fprintf(&b, "  outliers %d", d.Outliers)
		}
		b.WriteString("\n")
	}
	if len(dists) > 0 {
		b.WriteString(t.muted.Render(fmt.Sprintf("%*s %-*.2f%.2f", labelWidth, "", t.width-4, lo, hi)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return t.write(c.Name, b.String())
}

func (t *TerminalRenderer) header(title string) string {
	return t.title.Render(title) + "\n"
}

func (t *TerminalRenderer) write(name, s string) error {
	if _, err := io.WriteString(t.w, s); err != nil {
		return apperrors.NewRenderError(name, "terminal", err)
	}
	return nil
}

// alignSeries lays the series end to end on one index axis, padding each
// with NaN outside its own stretch. Empty series are skipped.
func alignSeries(series []Series) [][]float64 {
	total := 0
	for _, s := range series {
		total += len(s.Points)
	}
	if total == 0 {
		return nil
	}

	var data [][]float64
	offset := 0
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		row := make([]float64, total)
		for i := range row {
			row[i] = math.NaN()
		}
		for i, pt := range s.Points {
			row[offset+i] = pt.Y
		}
		offset += len(s.Points)
		data = append(data, row)
	}
	return data
}

// span returns the first and last dates across all series
func span(series []Series) (first, last string, ok bool) {
	for _, s := range series {
		for _, pt := range s.Points {
			d := pt.X.Format("2006-01")
			if !ok || d < first {
				first = d
			}
			if !ok || d > last {
				last = d
			}
			ok = true
		}
	}
	return first, last, ok
}

// boxRow draws a distribution on a width-column scale from lo to hi:
// whiskers as ─, the box as ■, the median as ┃ and outliers as •.
func boxRow(d analysis.RegionDistribution, lo, hi float64, width int) string {
	cells := []rune(strings.Repeat(" ", width))
	pos := func(v float64) int {
		if hi <= lo {
			return width / 2
		}
		p := int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
		return min(max(p, 0), width-1)
	}

	for i := pos(d.LowerWhisker); i <= pos(d.UpperWhisker); i++ {
		cells[i] = '─'
	}
	for i := pos(d.Q1); i <= pos(d.Q3); i++ {
		cells[i] = '■'
	}
	cells[pos(d.LowerWhisker)] = '├'
	cells[pos(d.UpperWhisker)] = '┤'
	cells[pos(d.Median)] = '┃'
	if d.Min < d.LowerWhisker {
		cells[pos(d.Min)] = '•'
	}
	if d.Max > d.UpperWhisker {
		cells[pos(d.Max)] = '•'
	}
	return string(cells)
}
