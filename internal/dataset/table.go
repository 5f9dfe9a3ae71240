package dataset

import (
	"math"
	"time"

	"unemploycli/pkg/contracts/domain"
)

// Go type names reported per column
const (
	typeDate   = "time.Time"
	typeString = "string"
	typeFloat  = "float64"
)

// Table is a loaded, cleaned rate dataset in file order
type Table struct {
	source  string
	records []domain.RateRecord
	dropped int
}

// NewTable wraps records read from source; dropped is the number of rows
// removed by cleaning.
func NewTable(source string, records []domain.RateRecord, dropped int) *Table {
	return &Table{source: source, records: records, dropped: dropped}
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in file order. The slice is shared; callers
// must not modify it.
func (t *Table) Records() []domain.RateRecord {
	return t.records
}

// Rates returns the rate column
func (t *Table) Rates() []float64 {
	rates := make([]float64, len(t.records))
	for i, r := range t.records {
		rates[i] = r.Rate
	}
	return rates
}

// Regions returns the distinct regions in order of first appearance
func (t *Table) Regions() []string {
	seen := make(map[string]bool)
	var regions []string
	for _, r := range t.records {
		if !seen[r.Region] {
			seen[r.Region] = true
			regions = append(regions, r.Region)
		}
	}
	return regions
}

// Head returns a copy of the first n records
func (t *Table) Head(n int) []domain.RateRecord {
	if n > len(t.records) {
		n = len(t.records)
	}
	if n < 0 {
		n = 0
	}
	head := make([]domain.RateRecord, n)
	copy(head, t.records[:n])
	return head
}

// DateRange returns the earliest and latest record dates. Both are zero for
// an empty table.
func (t *Table) DateRange() (first, last time.Time) {
	for i, r := range t.records {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}

// Info describes the table's shape: rows, column types and non-null counts
func (t *Table) Info() domain.TableInfo {
	var dates, regions, rates int
	for _, r := range t.records {
		if !r.Date.IsZero() {
			dates++
		}
		if r.Region != "" {
			regions++
		}
		if !math.IsNaN(r.Rate) {
			rates++
		}
	}

	first, last := t.DateRange()
	return domain.TableInfo{
		Source:      t.source,
		Rows:        len(t.records),
		DroppedRows: t.dropped,
		Columns: []domain.ColumnInfo{
			{Name: domain.ColumnDate, Type: typeDate, NonNull: dates},
			{Name: domain.ColumnRegion, Type: typeString, NonNull: regions},
			{Name: domain.ColumnRate, Type: typeFloat, NonNull: rates},
		},
		FirstDate: first,
		LastDate:  last,
	}
}
