package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"unemploycli/pkg/contracts/domain"
)

// SampleCSV is a small well-formed dataset: two regions, four months.
const SampleCSV = `Date,Region,Unemployment_Rate
2020-01-31,India,7.5
2020-02-29,India,7.8
2020-03-31,India,9.5
2020-04-30,India,12.5
2020-01-31,Kerala,5.0
2020-02-29,Kerala,5.2
2020-03-31,Kerala,6.1
2020-04-30,Kerala,8.4
`

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Record builds a rate record dated on the last day of the given month
func Record(region string, year int, month time.Month, rate float64) domain.RateRecord {
	return domain.RateRecord{
		Date:   Date(year, month+1, 0),
		Region: region,
		Rate:   rate,
	}
}

// MonthlySeries builds one record per month for a single region starting at
// the given month
func MonthlySeries(region string, year int, month time.Month, rates ...float64) []domain.RateRecord {
	records := make([]domain.RateRecord, len(rates))
	for i, r := range rates {
		records[i] = Record(region, year, month+time.Month(i), r)
	}
	return records
}

// MissingRate returns rec with its rate marked missing
func MissingRate(rec domain.RateRecord) domain.RateRecord {
	rec.Rate = math.NaN()
	return rec
}

// WriteCSV writes content to dir/unemployment.csv and returns the path
func WriteCSV(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "unemployment.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}
