package analysis

import (
	"unemploycli/pkg/contracts/domain"
)

// whiskerFactor is the Tukey fence multiplier applied to the IQR
const whiskerFactor = 1.5

// RegionDistribution is the box-plot summary of one region's rates
type RegionDistribution struct {
	Region       string  `json:"region"`
	Count        int     `json:"count"`
	Min          float64 `json:"min"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	Max          float64 `json:"max"`
	IQR          float64 `json:"iqr"`
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     int     `json:"outliers"`
}

// GroupByRegion returns the rates of each region, regions in order of first
// appearance.
func GroupByRegion(records []domain.RateRecord) (regions []string, values map[string][]float64) {
	values = make(map[string][]float64)
	for _, r := range records {
		if _, seen := values[r.Region]; !seen {
			regions = append(regions, r.Region)
		}
		values[r.Region] = append(values[r.Region], r.Rate)
	}
	return regions, values
}

// Regional computes the distribution of rates per region
func Regional(records []domain.RateRecord) []RegionDistribution {
	regions, values := GroupByRegion(records)

	out := make([]RegionDistribution, 0, len(regions))
	for _, region := range regions {
		out = append(out, Distribution(region, values[region]))
	}
	return out
}

// Distribution computes the box-plot summary of one non-empty sample
func Distribution(region string, values []float64) RegionDistribution {
	sorted := sortedCopy(values)
	n := len(sorted)

	d := RegionDistribution{
		Region: region,
		Count:  n,
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[n-1],
	}
	d.IQR = d.Q3 - d.Q1

	lowFence := d.Q1 - whiskerFactor*d.IQR
	highFence := d.Q3 + whiskerFactor*d.IQR

	// Whiskers reach the most extreme values still inside the fences.
	d.LowerWhisker, d.UpperWhisker = d.Q1, d.Q3
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			d.Outliers++
			continue
		}
		if v < d.LowerWhisker {
			d.LowerWhisker = v
		}
		if v > d.UpperWhisker {
			d.UpperWhisker = v
		}
	}
	return d
}
