package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "unemploycli/internal/errors"
)

// Summary holds the descriptive statistics of a set of rates
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"` // NaN when Count < 2
	Min    float64 `json:"min"`
	Q1     float64 `json:"p25"`
	Median float64 `json:"p50"`
	Q3     float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of values.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, apperrors.NewEmptyDatasetError("describe", "no rates to describe")
	}

	sorted := sortedCopy(values)
	s := Summary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		StdDev: math.NaN(),
		Min:    floats.Min(values),
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Q3:     percentile(sorted, 0.75),
		Max:    floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s, nil
}

// HasStdDev reports whether the standard deviation is defined
func (s Summary) HasStdDev() bool {
	return !math.IsNaN(s.StdDev)
}

// MarshalJSON writes an undefined standard deviation as null
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	out := struct {
		plain
		StdDev *float64 `json:"std"`
	}{plain: plain(s)}
	if s.HasStdDev() {
		out.StdDev = &s.StdDev
	}
	return json.Marshal(out)
}

// percentile returns the p-th quantile (0..1) of sorted values using linear
// interpolation between the closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
