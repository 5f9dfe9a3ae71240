package domain

import (
	"math"
	"time"
)

// Column names of the rate dataset file
const (
	ColumnDate   = "Date"
	ColumnRegion = "Region"
	ColumnRate   = "Unemployment_Rate"
)

// DateLayout is the layout used for dates in the dataset file and reports
const DateLayout = "2006-01-02"

// RateRecord is one row of the dataset: a month, a region and the
// unemployment rate observed there, in percent.
//
// A missing field is represented by its zero value for Date and Region and
// by NaN for Rate.
type RateRecord struct {
	Date   time.Time `json:"date"`
	Region string    `json:"region"`
	Rate   float64   `json:"unemployment_rate"`
}

// Complete reports whether every field of the record is present
func (r RateRecord) Complete() bool {
	return !r.Date.IsZero() && r.Region != "" && !math.IsNaN(r.Rate)
}

// Month returns the calendar month of the record date
func (r RateRecord) Month() time.Month {
	return r.Date.Month()
}

// Year returns the calendar year of the record date
func (r RateRecord) Year() int {
	return r.Date.Year()
}

// ColumnInfo describes one column of a loaded table
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NonNull int    `json:"non_null"`
}

// TableInfo summarises the shape of a loaded table
type TableInfo struct {
	Source      string       `json:"source"`
	Rows        int          `json:"rows"`
	DroppedRows int          `json:"dropped_rows"`
	Columns     []ColumnInfo `json:"columns"`
	FirstDate   time.Time    `json:"first_date"`
	LastDate    time.Time    `json:"last_date"`
}
