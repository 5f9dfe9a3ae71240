package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateRecord_Complete(t *testing.T) {
	date := time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		record   RateRecord
		expected bool
	}{
		{"all fields present", RateRecord{Date: date, Region: "India", Rate: 9.5}, true},
		{"zero rate is a value", RateRecord{Date: date, Region: "India", Rate: 0}, true},
		{"missing date", RateRecord{Region: "India", Rate: 9.5}, false},
		{"missing region", RateRecord{Date: date, Rate: 9.5}, false},
		{"missing rate", RateRecord{Date: date, Region: "India", Rate: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Complete())
		})
	}
}

func TestRateRecord_CalendarFields(t *testing.T) {
	r := RateRecord{Date: time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, time.December, r.Month())
	assert.Equal(t, 2021, r.Year())
}
