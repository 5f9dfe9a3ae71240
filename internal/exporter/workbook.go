package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"unemploycli/internal/analysis"
	apperrors "unemploycli/internal/errors"
	"unemploycli/pkg/contracts/domain"
)

// Workbook sheet names, in tab order
const (
	SheetSummary  = "Summary"
	SheetEvent    = "Event Impact"
	SheetSeasonal = "Seasonal"
	SheetYearly   = "Yearly"
	SheetRegional = "Regional"
	SheetInsights = "Insights"
)

// sheetWriter fills one sheet row by row
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (s *sheetWriter) writeRow(values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.sheet, cell, &values)
}

// WriteWorkbook writes the report as an XLSX workbook with one sheet per
// section.
func WriteWorkbook(report *analysis.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewRenderError("export", path, err)
	}

	sheets := []struct {
		name   string
		header []interface{}
		fill   func(*sheetWriter)
	}{
		{SheetSummary, []interface{}{"Statistic", "Value"}, func(w *sheetWriter) { fillSummary(w, report) }},
		{SheetEvent, []interface{}{"Period", "Records", "Mean", "From", "To"}, func(w *sheetWriter) { fillEvent(w, report.EventImpact) }},
		{SheetSeasonal, []interface{}{"Month", "Name", "Average Rate", "Records"}, func(w *sheetWriter) { fillSeasonal(w, report.Seasonal) }},
		{SheetYearly, []interface{}{"Year", "Average Rate", "Records"}, func(w *sheetWriter) { fillYearly(w, report.Yearly) }},
		{SheetRegional, []interface{}{"Region", "Records", "Min", "Q1", "Median", "Q3", "Max", "IQR", "Lower Whisker", "Upper Whisker", "Outliers"}, func(w *sheetWriter) { fillRegional(w, report.Regional) }},
		{SheetInsights, []interface{}{"Insight", "Month", "Average Rate"}, func(w *sheetWriter) { fillInsights(w, report.Insights) }},
	}

	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err != nil {
			return apperrors.NewRenderError("export", path, fmt.Errorf("create sheet %s: %w", s.name, err))
		}

		w := &sheetWriter{f: f, sheet: s.name}
		w.writeRow(s.header...)
		s.fill(w)
		if w.err == nil {
			w.err = f.SetRowStyle(s.name, 1, 1, headerStyle)
		}
		if w.err == nil {
			w.err = f.SetColWidth(s.name, "A", "K", 16)
		}
		if w.err != nil {
			return apperrors.NewRenderError("export", path, fmt.Errorf("fill sheet %s: %w", s.name, w.err))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewRenderError("export", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewRenderError("export", path, err)
	}
	return nil
}

func fillSummary(w *sheetWriter, report *analysis.Report) {
	s := report.Summary
	w.writeRow("Source", report.Info.Source)
	w.writeRow("Rows", report.Info.Rows)
	w.writeRow("Dropped Rows", report.Info.DroppedRows)
	w.writeRow("count", s.Count)
	w.writeRow("mean", s.Mean)
	if s.HasStdDev() {
		w.writeRow("std", s.StdDev)
	} else {
		w.writeRow("std", "n/a")
	}
	w.writeRow("min", s.Min)
	w.writeRow("25%", s.Q1)
	w.writeRow("50%", s.Median)
	w.writeRow("75%", s.Q3)
	w.writeRow("max", s.Max)
}

func fillEvent(w *sheetWriter, impact analysis.EventImpact) {
	period := func(label string, p analysis.PeriodStats) {
		if !p.HasData() {
			w.writeRow(label, p.Count, noData, "", "")
			return
		}
		w.writeRow(label, p.Count, *p.Mean, p.From.Format(domain.DateLayout), p.To.Format(domain.DateLayout))
	}
	period("Pre", impact.Pre)
	period("Post", impact.Post)

	w.writeRow()
	w.writeRow("Cutoff", impact.Cutoff.Format(domain.DateLayout))
	if impact.EventName != "" {
		w.writeRow("Event", impact.EventName)
	}
	w.writeRow("Delta", optional(impact.Delta))
	w.writeRow("Percent Change", optional(impact.PercentChange))
}

func fillSeasonal(w *sheetWriter, profile analysis.SeasonalProfile) {
	for _, m := range profile.Months {
		w.writeRow(int(m.Month), m.Name, m.Mean, m.Count)
	}
}

func fillYearly(w *sheetWriter, yearly []analysis.YearlyAverage) {
	for _, y := range yearly {
		w.writeRow(y.Year, y.Mean, y.Count)
	}
}

func fillRegional(w *sheetWriter, dists []analysis.RegionDistribution) {
	for _, d := range dists {
		w.writeRow(d.Region, d.Count, d.Min, d.Q1, d.Median, d.Q3, d.Max, d.IQR, d.LowerWhisker, d.UpperWhisker, d.Outliers)
	}
}

func fillInsights(w *sheetWriter, insights analysis.Insights) {
	w.writeRow("Highest", insights.Highest.Name, insights.Highest.Rate)
	w.writeRow("Lowest", insights.Lowest.Name, insights.Lowest.Rate)
}

// optional unwraps a pointer statistic for a cell
func optional(v *float64) interface{} {
	if v == nil {
		return noData
	}
	return *v
}
