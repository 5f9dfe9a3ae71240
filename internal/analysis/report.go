package analysis

import (
	"context"
	"log/slog"
	"time"

	apperrors "unemploycli/internal/errors"
	"unemploycli/pkg/contracts/domain"
)

// DefaultPreviewRows is the number of leading records kept in a report
const DefaultPreviewRows = 5

// Dataset is the loaded table as seen by the analysis
type Dataset interface {
	Records() []domain.RateRecord
	Info() domain.TableInfo
}

// Options controls a run of the analysis
type Options struct {
	Cutoff      time.Time
	EventName   string
	PreviewRows int
	RunID       string
	Logger      *slog.Logger
}

// Report is the complete result of one analysis run
type Report struct {
	RunID       string               `json:"run_id,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
	Info        domain.TableInfo     `json:"info"`
	Preview     []domain.RateRecord  `json:"preview"`
	Summary     Summary              `json:"summary"`
	EventImpact EventImpact          `json:"event_impact"`
	Seasonal    SeasonalProfile      `json:"seasonal"`
	Yearly      []YearlyAverage      `json:"yearly"`
	Regional    []RegionDistribution `json:"regional"`
	Insights    Insights             `json:"insights"`
}

// NewReport starts a report for ds with its table info and preview filled in
func NewReport(ds Dataset, opts Options) *Report {
	records := ds.Records()

	n := opts.PreviewRows
	if n <= 0 {
		n = DefaultPreviewRows
	}
	if n > len(records) {
		n = len(records)
	}
	preview := make([]domain.RateRecord, n)
	copy(preview, records[:n])

	return &Report{
		RunID:       opts.RunID,
		GeneratedAt: time.Now().UTC(),
		Info:        ds.Info(),
		Preview:     preview,
	}
}

// Run computes every statistic of the report in pipeline order. The context
// is checked between stages.
func Run(ctx context.Context, ds Dataset, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	records := ds.Records()
	report := NewReport(ds, opts)

	stages := []struct {
		name string
		run  func() error
	}{
		{"describe", func() error {
			summary, err := Describe(rates(records))
			report.Summary = summary
			return err
		}},
		{"event_impact", func() error {
			report.EventImpact = CompareEvent(records, opts.Cutoff)
			report.EventImpact.EventName = opts.EventName
			return nil
		}},
		{"seasonal", func() error {
			report.Seasonal = Seasonal(records)
			report.Yearly = YearlyAverages(records)
			return nil
		}},
		{"regional", func() error {
			report.Regional = Regional(records)
			return nil
		}},
		{"insights", func() error {
			insights, err := ExtractInsights(report.Seasonal)
			report.Insights = insights
			return err
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewCancellationError(stage.name, err)
		}
		if err := stage.run(); err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "Analysis stage complete", slog.String("stage", stage.name))
	}

	return report, nil
}
