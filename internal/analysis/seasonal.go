package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"unemploycli/pkg/contracts/domain"
)

// MonthlyAverage is the mean rate of one calendar month across all years
type MonthlyAverage struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Mean  float64    `json:"mean"`
	Count int        `json:"count"`
}

// SeasonalProfile lists monthly averages in ascending month order. Months
// without records are absent.
type SeasonalProfile struct {
	Months []MonthlyAverage `json:"months"`
}

// Len returns the number of months present
func (p SeasonalProfile) Len() int {
	return len(p.Months)
}

// Lookup returns the average for month m if present
func (p SeasonalProfile) Lookup(m time.Month) (MonthlyAverage, bool) {
	for _, avg := range p.Months {
		if avg.Month == m {
			return avg, true
		}
	}
	return MonthlyAverage{}, false
}

// YearlyAverage is the mean rate of one calendar year
type YearlyAverage struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Seasonal groups records by calendar month, ignoring the year, and averages
// each group.
func Seasonal(records []domain.RateRecord) SeasonalProfile {
	groups := make(map[time.Month][]float64)
	for _, r := range records {
		groups[r.Month()] = append(groups[r.Month()], r.Rate)
	}

	profile := SeasonalProfile{Months: make([]MonthlyAverage, 0, len(groups))}
	for m := time.January; m <= time.December; m++ {
		values, ok := groups[m]
		if !ok {
			continue
		}
		profile.Months = append(profile.Months, MonthlyAverage{
			Month: m,
			Name:  m.String(),
			Mean:  stat.Mean(values, nil),
			Count: len(values),
		})
	}
	return profile
}

// YearlyAverages groups records by calendar year, in ascending year order
func YearlyAverages(records []domain.RateRecord) []YearlyAverage {
	groups := make(map[int][]float64)
	for _, r := range records {
		groups[r.Year()] = append(groups[r.Year()], r.Rate)
	}

	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearlyAverage, len(years))
	for i, y := range years {
		out[i] = YearlyAverage{
			Year:  y,
			Mean:  stat.Mean(groups[y], nil),
			Count: len(groups[y]),
		}
	}
	return out
}
