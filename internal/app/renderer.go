package app

import (
	"context"
	"io"
	"log/slog"

	"unemploycli/internal/charts"
	"unemploycli/internal/config"
	"unemploycli/internal/infrastructure"
)

// newRenderer picks the renderers for the configured chart mode and counts
// every chart drawn
func newRenderer(cfg config.ChartsConfig, dir string, stdout io.Writer, logger *slog.Logger, metrics *infrastructure.Metrics) charts.Renderer {
	var multi charts.MultiRenderer
	if cfg.RendersPNG() {
		multi = append(multi, charts.NewPNGRenderer(dir, cfg.WidthInches, cfg.HeightInches,
			infrastructure.WithComponent(logger, "charts")))
	}
	if cfg.RendersTerminal() {
		multi = append(multi, charts.NewTerminalRenderer(stdout, cfg.TerminalWidth, cfg.TerminalHeight))
	}

	var r charts.Renderer = charts.NopRenderer{}
	switch len(multi) {
	case 0:
	case 1:
		r = multi[0]
	default:
		r = multi
	}
	return &meteredRenderer{next: r, metrics: metrics}
}

// meteredRenderer counts charts that rendered without error
type meteredRenderer struct {
	next    charts.Renderer
	metrics *infrastructure.Metrics
}

func (m *meteredRenderer) RenderLine(ctx context.Context, c charts.LineChart) error {
	if err := m.next.RenderLine(ctx, c); err != nil {
		return err
	}
	m.metrics.ChartRendered(charts.KindLine)
	return nil
}

func (m *meteredRenderer) RenderBar(ctx context.Context, c charts.BarChart) error {
	if err := m.next.RenderBar(ctx, c); err != nil {
		return err
	}
	m.metrics.ChartRendered(charts.KindBar)
	return nil
}

func (m *meteredRenderer) RenderBox(ctx context.Context, c charts.BoxChart) error {
	if err := m.next.RenderBox(ctx, c); err != nil {
		return err
	}
	m.metrics.ChartRendered(charts.KindBox)
	return nil
}
