package charts

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unemploycli/internal/analysis"
	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/shared/testutil"
	"unemploycli/pkg/contracts/domain"
)

var cutoff = time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)

func sampleRecords() []domain.RateRecord {
	records := testutil.MonthlySeries("India", 2019, time.November, 6.1, 6.0, 6.2, 9.5, 10.2, 11.0)
	return append(records, testutil.MonthlySeries("Kerala", 2020, time.January, 5.0, 5.2, 6.1)...)
}

func sampleReport(records []domain.RateRecord) *analysis.Report {
	report := &analysis.Report{
		EventImpact: analysis.CompareEvent(records, cutoff),
		Seasonal:    analysis.Seasonal(records),
	}
	report.EventImpact.EventName = "Covid-19"
	return report
}

// recorder keeps every chart it is asked to draw
type recorder struct {
	lines []LineChart
	bars  []BarChart
	boxes []BoxChart
	order []string
	fail  string
}

func (r *recorder) RenderLine(_ context.Context, c LineChart) error {
	r.lines = append(r.lines, c)
	return r.visit(c.Name)
}

func (r *recorder) RenderBar(_ context.Context, c BarChart) error {
	r.bars = append(r.bars, c)
	return r.visit(c.Name)
}

func (r *recorder) RenderBox(_ context.Context, c BoxChart) error {
	r.boxes = append(r.boxes, c)
	return r.visit(c.Name)
}

func (r *recorder) visit(name string) error {
	r.order = append(r.order, name)
	if name == r.fail {
		return errors.New("render failed")
	}
	return nil
}

func TestTrend(t *testing.T) {
	records := sampleRecords()
	c := Trend(records)

	assert.Equal(t, NameTrend, c.Name)
	assert.Equal(t, "Overall Unemployment Rate Trend", c.Title)
	assert.Equal(t, "Year", c.XLabel)
	require.Len(t, c.Series, 1)
	assert.Len(t, c.Series[0].Points, len(records))
	assert.Equal(t, records[0].Date, c.Series[0].Points[0].X)
	assert.Equal(t, 6.1, c.Series[0].Points[0].Y)
}

func TestEventComparison(t *testing.T) {
	records := sampleRecords()
	report := sampleReport(records)

	c := EventComparison(records, report.EventImpact)

	assert.Equal(t, "Impact of Covid-19 on Unemployment", c.Title)
	assert.True(t, c.Legend)
	require.Len(t, c.Series, 2)
	assert.Equal(t, "Pre-Covid", c.Series[0].Label)
	assert.Equal(t, "Post-Covid", c.Series[1].Label)
	assert.Len(t, c.Series[0].Points, 6)
	assert.Len(t, c.Series[1].Points, 3)
	for _, pt := range c.Series[0].Points {
		assert.True(t, pt.X.Before(cutoff))
	}
}

func TestSeasonalBars(t *testing.T) {
	profile := analysis.Seasonal(sampleRecords())
	c := SeasonalBars(profile)

	assert.Equal(t, "Average Monthly Unemployment Rate", c.Title)
	assert.Equal(t, "Month", c.XLabel)
	require.Len(t, c.Bars, profile.Len())
	assert.Equal(t, "1", c.Bars[0].Label)
	assert.Equal(t, "12", c.Bars[len(c.Bars)-1].Label)

	jan, ok := profile.Lookup(time.January)
	require.True(t, ok)
	assert.InDelta(t, jan.Mean, c.Bars[0].Value, 1e-9)
}

func TestRegionalBoxes(t *testing.T) {
	c := RegionalBoxes(sampleRecords())

	assert.Equal(t, "Region-wise Unemployment Distribution", c.Title)
	assert.Equal(t, domain.ColumnRate, c.YLabel)
	assert.InDelta(t, math.Pi/4, c.LabelRotation, 1e-12)
	require.Len(t, c.Groups, 2)
	assert.Equal(t, "India", c.Groups[0].Label)
	assert.Len(t, c.Groups[0].Values, 6)
	assert.Equal(t, "Kerala", c.Groups[1].Label)
	assert.Len(t, c.Groups[1].Values, 3)
}

// renderReport draws the four charts of a report in pipeline order
func renderReport(ctx context.Context, r Renderer, report *analysis.Report, records []domain.RateRecord) error {
	if err := r.RenderLine(ctx, Trend(records)); err != nil {
		return err
	}
	if err := r.RenderLine(ctx, EventComparison(records, report.EventImpact)); err != nil {
		return err
	}
	if err := r.RenderBar(ctx, SeasonalBars(report.Seasonal)); err != nil {
		return err
	}
	return r.RenderBox(ctx, RegionalBoxes(records))
}

func TestRenderReport(t *testing.T) {
	records := sampleRecords()
	r := &recorder{}

	require.NoError(t, renderReport(context.Background(), r, sampleReport(records), records))

	assert.Equal(t, []string{NameTrend, NameEvent, NameSeasonal, NameRegional}, r.order)
	assert.Len(t, r.lines, 2)
	assert.Len(t, r.bars, 1)
	assert.Len(t, r.boxes, 1)
}

func TestRenderReport_StopsAtFirstError(t *testing.T) {
	records := sampleRecords()
	r := &recorder{fail: NameEvent}

	err := renderReport(context.Background(), r, sampleReport(records), records)

	require.Error(t, err)
	assert.Equal(t, []string{NameTrend, NameEvent}, r.order)
}

func TestMultiRenderer(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	m := MultiRenderer{first, NopRenderer{}, second}

	records := sampleRecords()
	require.NoError(t, renderReport(context.Background(), m, sampleReport(records), records))

	assert.Equal(t, first.order, second.order)
	assert.Len(t, second.order, 4)

	failing := MultiRenderer{&recorder{fail: NameSeasonal}, second}
	assert.Error(t, failing.RenderBar(context.Background(), SeasonalBars(analysis.Seasonal(records))))
	assert.Len(t, second.bars, 1)
}

func TestPNGRenderer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	logger, handler := testutil.NewTestLogger(t)
	r := NewPNGRenderer(dir, 6.4, 4.8, logger)

	records := sampleRecords()
	require.NoError(t, renderReport(context.Background(), r, sampleReport(records), records))

	for _, name := range []string{NameTrend, NameEvent, NameSeasonal, NameRegional} {
		info, err := os.Stat(filepath.Join(dir, name+".png"))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
	assert.Equal(t, 4, len(handler.GetRecords()))
	assert.True(t, handler.ContainsMessage("Chart saved"))
}

func TestPNGRenderer_EmptyPartition(t *testing.T) {
	dir := t.TempDir()
	r := NewPNGRenderer(dir, 6.4, 4.8, nil)

	// Everything after the cutoff: the pre series is empty.
	records := testutil.MonthlySeries("India", 2020, time.April, 12.5, 10.0)
	c := EventComparison(records, analysis.CompareEvent(records, cutoff))

	require.NoError(t, r.RenderLine(context.Background(), c))
	assert.FileExists(t, r.Path(NameEvent))
}

func TestPNGRenderer_UnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	r := NewPNGRenderer(filepath.Join(blocker, "charts"), 6.4, 4.8, nil)
	err := r.RenderBar(context.Background(), SeasonalBars(analysis.Seasonal(sampleRecords())))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRender))
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, 40, 8)

	records := sampleRecords()
	require.NoError(t, renderReport(context.Background(), r, sampleReport(records), records))

	out := buf.String()
	assert.Contains(t, out, "Overall Unemployment Rate Trend")
	assert.Contains(t, out, "Impact of Covid-19 on Unemployment")
	assert.Contains(t, out, "[1] Pre-Covid  [2] Post-Covid")
	assert.Contains(t, out, "2019-11 .. 2020-04")
	assert.Contains(t, out, "Average Monthly Unemployment Rate")
	assert.Contains(t, out, "Region-wise Unemployment Distribution")
	assert.Contains(t, out, "median")

	// Colors are off when writing to a buffer.
	assert.NotContains(t, out, "\x1b[1m")
}

func TestTerminalRenderer_EmptySeries(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, 40, 8)

	require.NoError(t, r.RenderLine(context.Background(), LineChart{Name: NameTrend, Title: "Empty"}))
	assert.Contains(t, buf.String(), "(no data)")
}

func TestAlignSeries(t *testing.T) {
	pre := Series{Points: []Point{{Y: 1}, {Y: 2}}}
	post := Series{Points: []Point{{Y: 3}}}

	data := alignSeries([]Series{pre, {}, post})
	require.Len(t, data, 2)
	assert.Equal(t, 1.0, data[0][0])
	assert.True(t, math.IsNaN(data[0][2]))
	assert.True(t, math.IsNaN(data[1][0]))
	assert.Equal(t, 3.0, data[1][2])

	assert.Nil(t, alignSeries(nil))
}

func TestBoxRow(t *testing.T) {
	d := analysis.Distribution("India", []float64{1, 2, 3, 4, 5})
	row := []rune(boxRow(d, 1, 5, 9))

	require.Len(t, row, 9)
	assert.Equal(t, '├', row[0])
	assert.Equal(t, '┃', row[4])
	assert.Equal(t, '┤', row[8])
	assert.True(t, strings.ContainsRune(string(row), '■'))
}
