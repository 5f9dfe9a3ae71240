package app

import (
	"context"
	"log/slog"

	"unemploycli/internal/analysis"
	"unemploycli/internal/charts"
	"unemploycli/internal/dataset"
	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/exporter"
	"unemploycli/internal/infrastructure"
	"unemploycli/internal/operations"
)

// Step IDs in pipeline order
const (
	StepProvision   = "provision"
	StepLoad        = "load"
	StepDescribe    = "describe"
	StepTrend       = "trend"
	StepEventImpact = "event_impact"
	StepSeasonal    = "seasonal"
	StepRegional    = "regional"
	StepInsights    = "insights"
	StepExport      = "export"
)

// pipeline holds what one run passes from step to step
type pipeline struct {
	app    *App
	runID  string
	table  *dataset.Table
	report *analysis.Report
}

func (p *pipeline) steps() []operations.Step {
	return []operations.Step{
		operations.NewStep(StepProvision, "Provision dataset", p.provision),
		operations.NewStep(StepLoad, "Load and clean", p.load),
		operations.NewStep(StepDescribe, "Describe", p.describe),
		operations.NewStep(StepTrend, "Trend chart", p.trend),
		operations.NewStep(StepEventImpact, "Event impact", p.eventImpact),
		operations.NewStep(StepSeasonal, "Seasonal profile", p.seasonal),
		operations.NewStep(StepRegional, "Regional distribution", p.regional),
		operations.NewStep(StepInsights, "Insights", p.insights),
		operations.NewStep(StepExport, "Export reports", p.export),
	}
}

func (p *pipeline) provision(ctx context.Context, _ *operations.RunState) error {
	path := p.app.Paths.DatasetFile
	created, err := dataset.Ensure(ctx, path, infrastructure.WithComponent(p.app.Logger, "dataset"))
	if err != nil {
		return err
	}
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"dataset.created": created})

	if created && p.app.Config.Output.Text {
		if err := p.app.text.WriteProvisioned(path); err != nil {
			return apperrors.NewRenderError(StepProvision, "stdout", err)
		}
	}
	return nil
}

func (p *pipeline) load(ctx context.Context, _ *operations.RunState) error {
	path := p.app.Paths.DatasetFile
	if err := p.app.validator.ValidateCSVFile(path); err != nil {
		return apperrors.NewDataFileError(StepLoad, path, err)
	}

	table, err := dataset.Load(path)
	if err != nil {
		return err
	}
	p.table = table

	info := table.Info()
	p.app.Metrics.SetRecords(info.Rows, info.DroppedRows)
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"dataset.rows":    info.Rows,
		"dataset.dropped": info.DroppedRows,
	})
	p.app.Logger.InfoContext(ctx, "Dataset loaded",
		slog.String("path", info.Source),
		slog.Int("rows", info.Rows),
		slog.Int("dropped", info.DroppedRows))
	return nil
}

func (p *pipeline) describe(ctx context.Context, _ *operations.RunState) error {
	cutoff, err := p.app.Config.Analysis.CutoffDate()
	if err != nil {
		return apperrors.NewValidationError(StepDescribe, "invalid cutoff", err)
	}

	report, err := analysis.Run(ctx, p.table, analysis.Options{
		Cutoff:      cutoff,
		EventName:   p.app.Config.Analysis.EventName,
		PreviewRows: p.app.Config.Analysis.PreviewRows,
		RunID:       p.runID,
		Logger:      infrastructure.WithComponent(p.app.Logger, "analysis"),
	})
	if err != nil {
		return err
	}
	p.report = report

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"summary.count": report.Summary.Count,
		"summary.mean":  report.Summary.Mean,
	})
	return p.print(StepDescribe, func(t *exporter.TextWriter) error { return t.WriteOverview(report) })
}

func (p *pipeline) trend(ctx context.Context, _ *operations.RunState) error {
	return p.app.Renderer.RenderLine(ctx, charts.Trend(p.table.Records()))
}

func (p *pipeline) eventImpact(ctx context.Context, _ *operations.RunState) error {
	impact := p.report.EventImpact
	if err := p.app.Renderer.RenderLine(ctx, charts.EventComparison(p.table.Records(), impact)); err != nil {
		return err
	}

	p.app.Logger.InfoContext(ctx, "Event impact",
		slog.String("event", impact.EventName),
		slog.Int("pre_count", impact.Pre.Count),
		slog.Int("post_count", impact.Post.Count),
		meanAttr("pre_mean", impact.Pre.Mean),
		meanAttr("post_mean", impact.Post.Mean))
	return p.print(StepEventImpact, func(t *exporter.TextWriter) error { return t.WriteEventImpact(impact) })
}

func (p *pipeline) seasonal(ctx context.Context, _ *operations.RunState) error {
	return p.app.Renderer.RenderBar(ctx, charts.SeasonalBars(p.report.Seasonal))
}

func (p *pipeline) regional(ctx context.Context, _ *operations.RunState) error {
	return p.app.Renderer.RenderBox(ctx, charts.RegionalBoxes(p.table.Records()))
}

func (p *pipeline) insights(ctx context.Context, _ *operations.RunState) error {
	insights := p.report.Insights
	p.app.Logger.InfoContext(ctx, "Key insights",
		slog.Int("highest_month", int(insights.Highest.Month)),
		slog.Int("lowest_month", int(insights.Lowest.Month)))
	return p.print(StepInsights, func(t *exporter.TextWriter) error { return t.WriteInsights(insights) })
}

func (p *pipeline) export(ctx context.Context, _ *operations.RunState) error {
	out := p.app.Config.Output
	paths := p.app.Paths

	if out.JSON {
		if err := exporter.WriteJSON(p.report, paths.ReportJSON); err != nil {
			return err
		}
		p.app.Logger.InfoContext(ctx, "Report written", slog.String("path", paths.ReportJSON))
	}
	if out.Workbook {
		if err := exporter.WriteWorkbook(p.report, paths.ReportWorkbook); err != nil {
			return err
		}
		p.app.Logger.InfoContext(ctx, "Workbook written", slog.String("path", paths.ReportWorkbook))
	}
	if out.Metrics {
		if err := p.app.Metrics.WriteTextfile(paths.MetricsFile); err != nil {
			return apperrors.NewRenderError(StepExport, paths.MetricsFile, err)
		}
	}
	return nil
}

// print writes a text section when the text report is enabled
func (p *pipeline) print(step string, write func(*exporter.TextWriter) error) error {
	if !p.app.Config.Output.Text {
		return nil
	}
	if err := write(p.app.text); err != nil {
		return apperrors.NewRenderError(step, "stdout", err)
	}
	return nil
}

// meanAttr logs a partition mean, or "no data" for an empty partition
func meanAttr(key string, mean *float64) slog.Attr {
	if mean == nil {
		return slog.String(key, "no data")
	}
	return slog.Float64(key, *mean)
}
