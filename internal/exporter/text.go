package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"unemploycli/internal/analysis"
	"unemploycli/pkg/contracts/domain"
)

// TextWriter prints a report for humans
type TextWriter struct {
	w       io.Writer
	heading lipgloss.Style
	accent  lipgloss.Style
}

// NewTextWriter creates a text writer. Styling is dropped automatically when
// w is not a terminal.
func NewTextWriter(w io.Writer) *TextWriter {
	r := lipgloss.NewRenderer(w)
	return &TextWriter{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		accent:  r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// WriteOverview prints the dataset info, preview and summary sections
func (t *TextWriter) WriteOverview(report *analysis.Report) error {
	return t.write(
		func(b *strings.Builder) { t.writeInfo(b, report.Info) },
		func(b *strings.Builder) { t.writePreview(b, report.Preview) },
		func(b *strings.Builder) { t.writeSummary(b, report.Summary) },
	)
}

// WriteEventImpact prints the pre/post comparison section
func (t *TextWriter) WriteEventImpact(impact analysis.EventImpact) error {
	return t.write(func(b *strings.Builder) { t.writeEvent(b, impact) })
}

// WriteInsights prints the extremal months section
func (t *TextWriter) WriteInsights(insights analysis.Insights) error {
	return t.write(func(b *strings.Builder) { t.writeInsights(b, insights) })
}

// write renders sections separated by blank lines, followed by one blank line
func (t *TextWriter) write(sections ...func(*strings.Builder)) error {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		section(&b)
	}
	b.WriteString("\n")

	_, err := io.WriteString(t.w, b.String())
	return err
}

// WriteProvisioned announces a freshly synthesized dataset
func (t *TextWriter) WriteProvisioned(path string) error {
	_, err := fmt.Fprintf(t.w, "%s not found. Created sample dataset.\n\n", path)
	return err
}

func (t *TextWriter) title(b *strings.Builder, s string) {
	b.WriteString(t.heading.Render(s))
	b.WriteString("\n")
}

// table starts a bordered table with the given header row
func (t *TextWriter) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func (t *TextWriter) writeInfo(b *strings.Builder, info domain.TableInfo) {
	t.title(b, "Dataset Info:")
	fmt.Fprintf(b, "Source: %s\n", info.Source)
	fmt.Fprintf(b, "Rows: %d (dropped %d with missing values)\n", info.Rows, info.DroppedRows)
	if !info.FirstDate.IsZero() {
		fmt.Fprintf(b, "Range: %s to %s\n", formatDate(info.FirstDate), formatDate(info.LastDate))
	}

	tbl := t.table("#", "Column", "Non-Null Count", "Dtype")
	for i, c := range info.Columns {
		tbl.Row(strconv.Itoa(i), c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Type)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
}

func (t *TextWriter) writePreview(b *strings.Builder, preview []domain.RateRecord) {
	t.title(b, fmt.Sprintf("First %d rows:", len(preview)))

	tbl := t.table("", domain.ColumnDate, domain.ColumnRegion, domain.ColumnRate)
	for i, r := range preview {
		tbl.Row(strconv.Itoa(i), formatDate(r.Date), r.Region, formatRate(r.Rate))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
}

func (t *TextWriter) writeSummary(b *strings.Builder, s analysis.Summary) {
	t.title(b, "Statistical Summary:")

	tbl := t.table("Statistic", "Unemployment_Rate").Rows(
		[]string{"count", strconv.Itoa(s.Count)},
		[]string{"mean", formatStat(s.Mean)},
		[]string{"std", formatStat(s.StdDev)},
		[]string{"min", formatStat(s.Min)},
		[]string{"25%", formatStat(s.Q1)},
		[]string{"50%", formatStat(s.Median)},
		[]string{"75%", formatStat(s.Q3)},
		[]string{"max", formatStat(s.Max)},
	)
	b.WriteString(tbl.String())
	b.WriteString("\n")
}

func (t *TextWriter) writeEvent(b *strings.Builder, impact analysis.EventImpact) {
	name := impact.EventName
	if name == "" {
		name = "event"
	}
	t.title(b, fmt.Sprintf("%s Impact (cutoff %s):", name, formatDate(impact.Cutoff)))

	short := impact.ShortName()
	fmt.Fprintf(b, "Average Unemployment Rate (Pre-%s): %s [%d records]\n",
		short, formatMean(impact.Pre.Mean), impact.Pre.Count)
	fmt.Fprintf(b, "Average Unemployment Rate (Post-%s): %s [%d records]\n",
		short, formatMean(impact.Post.Mean), impact.Post.Count)
	if impact.Delta != nil {
		fmt.Fprintf(b, "Change: %s points (%s)\n",
			t.accent.Render(fmt.Sprintf("%+.4f", *impact.Delta)), formatPercent(impact.PercentChange))
	}
}

func (t *TextWriter) writeInsights(b *strings.Builder, insights analysis.Insights) {
	t.title(b, "Key Insights:")
	fmt.Fprintf(b, "Highest unemployment observed in month: %d (%s, %s)\n",
		int(insights.Highest.Month), insights.Highest.Name, formatStat(insights.Highest.Rate))
	fmt.Fprintf(b, "Lowest unemployment observed in month: %d (%s, %s)\n",
		int(insights.Lowest.Month), insights.Lowest.Name, formatStat(insights.Lowest.Rate))
}
