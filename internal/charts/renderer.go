package charts

import (
	"context"
	"time"
)

// Chart names, also used as PNG file names
const (
	NameTrend    = "trend"
	NameEvent    = "event_impact"
	NameSeasonal = "seasonal"
	NameRegional = "regional"
)

// Chart kinds, used as the metrics label
const (
	KindLine = "line"
	KindBar  = "bar"
	KindBox  = "box"
)

// Point is one observation of a time series
type Point struct {
	X time.Time
	Y float64
}

// Series is a labeled time series
type Series struct {
	Label  string
	Points []Point
}

// LineChart plots one or more time series on a shared date axis
type LineChart struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Legend bool
}

// Bar is one category of a bar chart
type Bar struct {
	Label string
	Value float64
}

// BarChart plots one value per category
type BarChart struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// BoxGroup is the sample of one box in a box plot
type BoxGroup struct {
	Label  string
	Values []float64
}

// BoxChart plots the distribution of each group. LabelRotation is in
// radians; a zero size means the renderer default.
type BoxChart struct {
	Name          string
	Title         string
	XLabel        string
	YLabel        string
	Groups        []BoxGroup
	LabelRotation float64
	WidthInches   float64
	HeightInches  float64
}

// Renderer draws charts somewhere. Implementations must not block waiting
// for user interaction.
type Renderer interface {
	RenderLine(ctx context.Context, c LineChart) error
	RenderBar(ctx context.Context, c BarChart) error
	RenderBox(ctx context.Context, c BoxChart) error
}

// NopRenderer discards every chart
type NopRenderer struct{}

func (NopRenderer) RenderLine(context.Context, LineChart) error { return nil }
func (NopRenderer) RenderBar(context.Context, BarChart) error   { return nil }
func (NopRenderer) RenderBox(context.Context, BoxChart) error   { return nil }

// MultiRenderer renders each chart with every renderer in order, stopping at
// the first error.
type MultiRenderer []Renderer

func (m MultiRenderer) RenderLine(ctx context.Context, c LineChart) error {
	for _, r := range m {
		if err := r.RenderLine(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiRenderer) RenderBar(ctx context.Context, c BarChart) error {
	for _, r := range m {
		if err := r.RenderBar(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiRenderer) RenderBox(ctx context.Context, c BoxChart) error {
	for _, r := range m {
		if err := r.RenderBox(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
