package dataset

import (
	"time"

	"unemploycli/pkg/contracts/domain"
)

// SampleRegion is the single region of the synthesized dataset
const SampleRegion = "India"

// SampleRates are the monthly rates of the synthesized dataset, January 2019
// through December 2021.
var SampleRates = []float64{
	6.1, 6.0, 6.2, 6.3, 6.5, 6.7,
	7.0, 7.2, 7.5, 7.8, 8.0, 8.2,
	9.5, 10.2, 11.0, 12.5, 13.8, 14.0,
	12.0, 11.5, 10.8, 9.9, 9.0, 8.5,
	7.8, 7.5, 7.2, 7.0, 6.8, 6.6,
	6.4, 6.3, 6.2, 6.1, 6.0, 5.9,
}

// sampleStart is the first month of the sample
var sampleStart = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

// SampleRecords builds the sample dataset. Each record is dated on the last
// day of its month.
func SampleRecords() []domain.RateRecord {
	records := make([]domain.RateRecord, len(SampleRates))
	for i, rate := range SampleRates {
		// Day 0 of the following month is the last day of this one.
		monthEnd := sampleStart.AddDate(0, i+1, -1)
		records[i] = domain.RateRecord{
			Date:   monthEnd,
			Region: SampleRegion,
			Rate:   rate,
		}
	}
	return records
}
