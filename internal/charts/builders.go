package charts

import (
	"fmt"
	"math"
	"strconv"

	"unemploycli/internal/analysis"
	"unemploycli/pkg/contracts/domain"
)

const (
	rateLabel = "Unemployment Rate (%)"

	// Box plot labels are always tilted; region names get long.
	boxLabelRotation = math.Pi / 4
	boxWidthInches   = 10
	boxHeightInches  = 5
)

// Trend plots every rate against its date
func Trend(records []domain.RateRecord) LineChart {
	return LineChart{
		Name:   NameTrend,
		Title:  "Overall Unemployment Rate Trend",
		XLabel: "Year",
		YLabel: rateLabel,
		Series: []Series{{Label: "Unemployment Rate", Points: points(records)}},
	}
}

// EventComparison plots the records before and after cutoff as two labeled
// series. eventName "Covid-19" yields the labels "Pre-Covid" and
// "Post-Covid".
func EventComparison(records []domain.RateRecord, impact analysis.EventImpact) LineChart {
	pre, post := analysis.Partition(records, impact.Cutoff)
	short := impact.ShortName()

	title := "Impact of the Event on Unemployment"
	if impact.EventName != "" {
		title = fmt.Sprintf("Impact of %s on Unemployment", impact.EventName)
	}

	return LineChart{
		Name:   NameEvent,
		Title:  title,
		XLabel: "Year",
		YLabel: rateLabel,
		Series: []Series{
			{Label: "Pre-" + short, Points: points(pre)},
			{Label: "Post-" + short, Points: points(post)},
		},
		Legend: true,
	}
}

// SeasonalBars plots the average rate of each month present, labeled by
// month number
func SeasonalBars(profile analysis.SeasonalProfile) BarChart {
	bars := make([]Bar, len(profile.Months))
	for i, m := range profile.Months {
		bars[i] = Bar{Label: strconv.Itoa(int(m.Month)), Value: m.Mean}
	}
	return BarChart{
		Name:   NameSeasonal,
		Title:  "Average Monthly Unemployment Rate",
		XLabel: "Month",
		YLabel: rateLabel,
		Bars:   bars,
	}
}

// RegionalBoxes plots the rate distribution of each region in order of first
// appearance
func RegionalBoxes(records []domain.RateRecord) BoxChart {
	regions, values := analysis.GroupByRegion(records)

	groups := make([]BoxGroup, len(regions))
	for i, region := range regions {
		groups[i] = BoxGroup{Label: region, Values: values[region]}
	}
	return BoxChart{
		Name:          NameRegional,
		Title:         "Region-wise Unemployment Distribution",
		XLabel:        "Region",
		YLabel:        domain.ColumnRate,
		Groups:        groups,
		LabelRotation: boxLabelRotation,
		WidthInches:   boxWidthInches,
		HeightInches:  boxHeightInches,
	}
}

func points(records []domain.RateRecord) []Point {
	pts := make([]Point, len(records))
	for i, r := range records {
		pts[i] = Point{X: r.Date, Y: r.Rate}
	}
	return pts
}
