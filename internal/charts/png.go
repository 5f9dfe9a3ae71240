package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "unemploycli/internal/errors"
)

// PNGRenderer writes each chart to <Dir>/<chart name>.png
type PNGRenderer struct {
	Dir          string
	WidthInches  float64
	HeightInches float64
	Logger       *slog.Logger
}

// NewPNGRenderer creates a renderer writing into dir with the given default
// figure size
func NewPNGRenderer(dir string, widthInches, heightInches float64, logger *slog.Logger) *PNGRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PNGRenderer{
		Dir:          dir,
		WidthInches:  widthInches,
		HeightInches: heightInches,
		Logger:       logger,
	}
}

// Path returns the file a chart with the given name is written to
func (r *PNGRenderer) Path(name string) string {
	return filepath.Join(r.Dir, name+".png")
}

// RenderLine draws a date/value line chart
func (r *PNGRenderer) RenderLine(ctx context.Context, c LineChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.X.Unix())
			xys[j].Y = pt.Y
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return apperrors.NewRenderError(c.Name, r.Path(c.Name), fmt.Errorf("series %q: %w", s.Label, err))
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)

		if c.Legend {
			p.Legend.Add(s.Label, line)
		}
	}
	p.Legend.Top = true

	return r.save(ctx, p, c.Name, r.WidthInches, r.HeightInches)
}

// RenderBar draws one bar per category
func (r *PNGRenderer) RenderBar(ctx context.Context, c BarChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	values := make(plotter.Values, len(c.Bars))
	labels := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return apperrors.NewRenderError(c.Name, r.Path(c.Name), err)
		}
		bars.Color = plotutil.Color(0)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(labels...)
	}
	p.Y.Min = 0

	return r.save(ctx, p, c.Name, r.WidthInches, r.HeightInches)
}

// RenderBox draws one box per group with rotated category labels
func (r *PNGRenderer) RenderBox(ctx context.Context, c BoxChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	labels := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		labels[i] = g.Label
		if len(g.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(g.Values))
		if err != nil {
			return apperrors.NewRenderError(c.Name, r.Path(c.Name), fmt.Errorf("group %q: %w", g.Label, err))
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}

	p.X.Tick.Label.Rotation = c.LabelRotation
	if c.LabelRotation != 0 {
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	width, height := r.WidthInches, r.HeightInches
	if c.WidthInches > 0 && c.HeightInches > 0 {
		width, height = c.WidthInches, c.HeightInches
	}
	return r.save(ctx, p, c.Name, width, height)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func (r *PNGRenderer) save(ctx context.Context, p *plot.Plot, name string, widthInches, heightInches float64) error {
	path := r.Path(name)
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return apperrors.NewRenderError(name, path, err)
	}
	if err := p.Save(vg.Length(widthInches)*vg.Inch, vg.Length(heightInches)*vg.Inch, path); err != nil {
		return apperrors.NewRenderError(name, path, err)
	}

	r.Logger.InfoContext(ctx, "Chart saved",
		slog.String("chart", name),
		slog.String("path", path))
	return nil
}
