package analysis

import (
	"time"

	apperrors "unemploycli/internal/errors"
)

// MonthInsight names a calendar month and its average rate
type MonthInsight struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Rate  float64    `json:"rate"`
}

// Insights holds the months with the highest and lowest average rate
type Insights struct {
	Highest MonthInsight `json:"highest"`
	Lowest  MonthInsight `json:"lowest"`
}

// ExtractInsights picks the extremal months of a seasonal profile. On a tie
// the earlier month wins.
func ExtractInsights(profile SeasonalProfile) (Insights, error) {
	if profile.Len() == 0 {
		return Insights{}, apperrors.NewEmptyDatasetError("insights", "seasonal profile has no months")
	}

	hi, lo := profile.Months[0], profile.Months[0]
	for _, m := range profile.Months[1:] {
		if m.Mean > hi.Mean {
			hi = m
		}
		if m.Mean < lo.Mean {
			lo = m
		}
	}

	return Insights{
		Highest: MonthInsight{Month: hi.Month, Name: hi.Name, Rate: hi.Mean},
		Lowest:  MonthInsight{Month: lo.Month, Name: lo.Name, Rate: lo.Mean},
	}, nil
}
