package analysis

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/shared/testutil"
	"unemploycli/pkg/contracts/domain"
)

var sampleRates = []float64{
	6.1, 6.0, 6.2, 6.3, 6.5, 6.7, 7.0, 7.2, 7.5, 7.8, 8.0, 8.2,
	9.5, 10.2, 11.0, 12.5, 13.8, 14.0, 12.0, 11.5, 10.8, 9.9, 9.0, 8.5,
	7.8, 7.5, 7.2, 7.0, 6.8, 6.6, 6.4, 6.3, 6.2, 6.1, 6.0, 5.9,
}

var covidCutoff = testutil.Date(2020, time.March, 1)

func sampleRecords() []domain.RateRecord {
	return testutil.MonthlySeries("India", 2019, time.January, sampleRates...)
}

type fakeDataset struct {
	records []domain.RateRecord
}

func (f fakeDataset) Records() []domain.RateRecord { return f.records }

func (f fakeDataset) Info() domain.TableInfo {
	return domain.TableInfo{Source: "memory", Rows: len(f.records)}
}

func TestDescribe(t *testing.T) {
	s, err := Describe(sampleRates)
	require.NoError(t, err)

	assert.Equal(t, 36, s.Count)
	assert.InDelta(t, 296.0/36, s.Mean, 1e-9)
	assert.InDelta(t, 2.3350877757880797, s.StdDev, 1e-9)
	assert.Equal(t, 5.9, s.Min)
	assert.InDelta(t, 6.375, s.Q1, 1e-9)
	assert.InDelta(t, 7.35, s.Median, 1e-9)
	assert.InDelta(t, 9.6, s.Q3, 1e-9)
	assert.Equal(t, 14.0, s.Max)
	assert.True(t, s.HasStdDev())
}

func TestDescribe_EdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Describe(nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEmptyDataset))
		assert.ErrorIs(t, err, apperrors.ErrNoData)
	})

	t.Run("single value has undefined spread", func(t *testing.T) {
		s, err := Describe([]float64{7.5})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Count)
		assert.Equal(t, 7.5, s.Median)
		assert.True(t, math.IsNaN(s.StdDev))

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"std":null`)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		values := []float64{3, 1, 2}
		_, err := Describe(values)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, percentile(sorted, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.True(t, math.IsNaN(percentile(nil, 0.5)))
}

func TestPartition(t *testing.T) {
	records := sampleRecords()
	pre, post := Partition(records, covidCutoff)

	assert.Len(t, pre, 14)
	assert.Len(t, post, 22)
	assert.Equal(t, records, append(append([]domain.RateRecord{}, pre...), post...))

	for _, r := range pre {
		assert.True(t, r.Date.Before(covidCutoff))
	}
	for _, r := range post {
		assert.False(t, r.Date.Before(covidCutoff))
	}
}

func TestPartition_CutoffDateGoesToPost(t *testing.T) {
	onCutoff := domain.RateRecord{Date: covidCutoff, Region: "India", Rate: 7}
	pre, post := Partition([]domain.RateRecord{onCutoff}, covidCutoff)

	assert.Empty(t, pre)
	assert.Equal(t, []domain.RateRecord{onCutoff}, post)
}

func TestCompareEvent(t *testing.T) {
	impact := CompareEvent(sampleRecords(), covidCutoff)

	assert.Equal(t, 14, impact.Pre.Count)
	assert.Equal(t, 22, impact.Post.Count)
	require.NotNil(t, impact.Pre.Mean)
	require.NotNil(t, impact.Post.Mean)
	assert.InDelta(t, 7.371428571428571, *impact.Pre.Mean, 1e-9)
	assert.InDelta(t, 8.763636363636364, *impact.Post.Mean, 1e-9)
	require.NotNil(t, impact.Delta)
	assert.InDelta(t, *impact.Post.Mean-*impact.Pre.Mean, *impact.Delta, 1e-12)
	require.NotNil(t, impact.PercentChange)
	assert.InDelta(t, *impact.Delta / *impact.Pre.Mean * 100, *impact.PercentChange, 1e-9)

	assert.Equal(t, testutil.Date(2019, time.January, 31), impact.Pre.From)
	assert.Equal(t, testutil.Date(2020, time.February, 29), impact.Pre.To)
	assert.Equal(t, testutil.Date(2020, time.March, 31), impact.Post.From)
}

func TestCompareEvent_EmptySide(t *testing.T) {
	records := testutil.MonthlySeries("India", 2021, time.January, 7.8, 7.5)

	impact := CompareEvent(records, covidCutoff)

	assert.Equal(t, 0, impact.Pre.Count)
	assert.Nil(t, impact.Pre.Mean)
	assert.False(t, impact.Pre.HasData())
	assert.True(t, impact.Post.HasData())
	assert.Nil(t, impact.Delta)
	assert.Nil(t, impact.PercentChange)

	data, err := json.Marshal(impact)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"delta":null`)
}

func TestEventImpact_ShortName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Covid-19", "Covid"},
		{"Lockdown", "Lockdown"},
		{"", "Event"},
		{"-19", "-19"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EventImpact{EventName: tt.name}.ShortName(), tt.name)
	}
}

func TestSeasonal(t *testing.T) {
	profile := Seasonal(sampleRecords())

	require.Equal(t, 12, profile.Len())
	for i, m := range profile.Months {
		assert.Equal(t, time.Month(i+1), m.Month)
		assert.Equal(t, 3, m.Count)

		want := (sampleRates[i] + sampleRates[i+12] + sampleRates[i+24]) / 3
		assert.InDelta(t, want, m.Mean, 1e-9, m.Name)
	}

	june, ok := profile.Lookup(time.June)
	require.True(t, ok)
	assert.Equal(t, "June", june.Name)
	assert.InDelta(t, 9.1, june.Mean, 1e-9)
}

func TestSeasonal_MissingMonthsAbsent(t *testing.T) {
	records := []domain.RateRecord{
		testutil.Record("India", 2020, time.March, 9),
		testutil.Record("India", 2019, time.March, 7),
		testutil.Record("India", 2019, time.January, 6),
	}

	profile := Seasonal(records)

	require.Equal(t, 2, profile.Len())
	assert.Equal(t, time.January, profile.Months[0].Month)
	assert.Equal(t, time.March, profile.Months[1].Month)
	assert.Equal(t, 8.0, profile.Months[1].Mean)

	_, ok := profile.Lookup(time.February)
	assert.False(t, ok)
	assert.Equal(t, 0, Seasonal(nil).Len())
}

func TestYearlyAverages(t *testing.T) {
	yearly := YearlyAverages(sampleRecords())

	require.Len(t, yearly, 3)
	assert.Equal(t, 2019, yearly[0].Year)
	assert.InDelta(t, 6.958333333333333, yearly[0].Mean, 1e-9)
	assert.Equal(t, 2020, yearly[1].Year)
	assert.InDelta(t, 11.058333333333334, yearly[1].Mean, 1e-9)
	assert.Equal(t, 2021, yearly[2].Year)
	assert.InDelta(t, 6.65, yearly[2].Mean, 1e-9)
	assert.Equal(t, 12, yearly[2].Count)
}

func TestRegional(t *testing.T) {
	records := append(sampleRecords(),
		testutil.Record("Kerala", 2020, time.January, 5),
		testutil.Record("Kerala", 2020, time.February, 6),
		testutil.Record("Kerala", 2020, time.March, 7),
		testutil.Record("Kerala", 2020, time.April, 8),
		testutil.Record("Kerala", 2020, time.May, 30),
	)

	dists := Regional(records)
	require.Len(t, dists, 2)

	india := dists[0]
	assert.Equal(t, "India", india.Region)
	assert.Equal(t, 36, india.Count)
	assert.InDelta(t, 6.375, india.Q1, 1e-9)
	assert.InDelta(t, 9.6-6.375, india.IQR, 1e-9)
	assert.Equal(t, 0, india.Outliers)
	assert.Equal(t, 5.9, india.LowerWhisker)
	assert.Equal(t, 14.0, india.UpperWhisker)

	kerala := dists[1]
	assert.Equal(t, "Kerala", kerala.Region)
	assert.Equal(t, 5, kerala.Count)
	assert.Equal(t, 7.0, kerala.Median)
	assert.Equal(t, 30.0, kerala.Max)
	assert.Equal(t, 1, kerala.Outliers)
	assert.Equal(t, 8.0, kerala.UpperWhisker)
	assert.Equal(t, 5.0, kerala.LowerWhisker)
}

func TestGroupByRegion_FirstAppearanceOrder(t *testing.T) {
	records := []domain.RateRecord{
		testutil.Record("B", 2020, time.January, 1),
		testutil.Record("A", 2020, time.January, 2),
		testutil.Record("B", 2020, time.February, 3),
	}

	regions, values := GroupByRegion(records)

	assert.Equal(t, []string{"B", "A"}, regions)
	assert.Equal(t, []float64{1, 3}, values["B"])
}

func TestExtractInsights(t *testing.T) {
	insights, err := ExtractInsights(Seasonal(sampleRecords()))
	require.NoError(t, err)

	assert.Equal(t, time.June, insights.Highest.Month)
	assert.Equal(t, "June", insights.Highest.Name)
	assert.InDelta(t, 9.1, insights.Highest.Rate, 1e-9)
	assert.Equal(t, time.December, insights.Lowest.Month)
	assert.InDelta(t, 7.533333333333333, insights.Lowest.Rate, 1e-9)
}

func TestExtractInsights_Ties(t *testing.T) {
	profile := SeasonalProfile{Months: []MonthlyAverage{
		{Month: time.February, Name: "February", Mean: 5},
		{Month: time.April, Name: "April", Mean: 9},
		{Month: time.July, Name: "July", Mean: 5},
		{Month: time.October, Name: "October", Mean: 9},
	}}

	insights, err := ExtractInsights(profile)
	require.NoError(t, err)

	assert.Equal(t, time.April, insights.Highest.Month)
	assert.Equal(t, time.February, insights.Lowest.Month)
}

func TestExtractInsights_EmptyProfile(t *testing.T) {
	_, err := ExtractInsights(SeasonalProfile{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEmptyDataset))
}

func TestRun(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	report, err := Run(context.Background(), fakeDataset{records: sampleRecords()}, Options{
		Cutoff:    covidCutoff,
		EventName: "Covid-19",
		RunID:     "run-1",
		Logger:    logger,
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 36, report.Info.Rows)
	assert.Len(t, report.Preview, DefaultPreviewRows)
	assert.Equal(t, 6.1, report.Preview[0].Rate)
	assert.Equal(t, 36, report.Summary.Count)
	assert.Equal(t, "Covid-19", report.EventImpact.EventName)
	assert.Equal(t, 14, report.EventImpact.Pre.Count)
	assert.Equal(t, 12, report.Seasonal.Len())
	assert.Len(t, report.Yearly, 3)
	assert.Len(t, report.Regional, 1)
	assert.Equal(t, time.June, report.Insights.Highest.Month)
	assert.False(t, report.GeneratedAt.IsZero())

	testutil.AssertLogAttr(t, handler, "stage", "insights")
}

func TestRun_PreviewShorterThanTable(t *testing.T) {
	records := testutil.MonthlySeries("India", 2019, time.January, 6.1, 6.0)

	report, err := Run(context.Background(), fakeDataset{records: records}, Options{Cutoff: covidCutoff, PreviewRows: 10})
	require.NoError(t, err)
	assert.Len(t, report.Preview, 2)
}

func TestRun_EmptyDataset(t *testing.T) {
	_, err := Run(context.Background(), fakeDataset{}, Options{Cutoff: covidCutoff})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, fakeDataset{records: sampleRecords()}, Options{Cutoff: covidCutoff})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCancellation))
	assert.ErrorIs(t, err, context.Canceled)
}
