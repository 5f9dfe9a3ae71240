package exporter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"whole number keeps one decimal", 6.0, "6.0"},
		{"one decimal", 10.2, "10.2"},
		{"shortest representation", 7.371428571428571, "7.371428571428571"},
		{"zero", 0, "0.0"},
		{"negative", -1.5, "-1.5"},
		{"large whole", 100, "100.0"},
		{"missing", math.NaN(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatRate(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2020-02-29", formatDate(time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", formatDate(time.Time{}))
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "8.2222", formatStat(296.0/36))
	assert.Equal(t, "n/a", formatStat(math.NaN()))
}

func TestFormatMean(t *testing.T) {
	v := 7.5
	assert.Equal(t, "7.5000", formatMean(&v))
	assert.Equal(t, "no data", formatMean(nil))
}

func TestFormatPercent(t *testing.T) {
	up, down := 18.888, -4.2
	assert.Equal(t, "+18.89%", formatPercent(&up))
	assert.Equal(t, "-4.20%", formatPercent(&down))
	assert.Equal(t, "no data", formatPercent(nil))
}
