package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "unemploycli/internal/errors"
	"unemploycli/pkg/contracts/domain"
)

// naTokens are cell values read as missing, in addition to the empty cell
var naTokens = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// dateLayouts are tried in order when parsing the date column
var dateLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

var (
	errMissingColumn = errors.New("required column not found in header")
	errInfiniteRate  = errors.New("rate must be a finite number")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// columnIndex holds the position of each required column
type columnIndex struct {
	date, region, rate int
}

// Load reads, parses and cleans the dataset at path
func Load(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewDataFileError("load", path, err)
	}
	return Parse(bytes.NewReader(content), path)
}

// Parse reads a dataset from r. source names the input in the table info
// and errors.
func Parse(r io.Reader, source string) (*Table, error) {
	raw, err := readRecords(r)
	if err != nil {
		var aErr *apperrors.AnalysisError
		if errors.As(err, &aErr) {
			return nil, aErr.WithContext("source", source)
		}
		return nil, apperrors.NewDataFileError("load", source, err)
	}

	records, dropped := Clean(raw)
	return NewTable(source, records, dropped), nil
}

func readRecords(r io.Reader) ([]domain.RateRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewEmptyDatasetError("load", "file has no header row")
	}
	if err != nil {
		return nil, csvError(err)
	}

	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.RateRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// findColumns locates the required columns by name, ignoring case and
// surrounding whitespace. Extra columns are ignored.
func findColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, region: -1, rate: -1}
	for i, col := range header {
		switch normalizeColumn(col) {
		case strings.ToLower(domain.ColumnDate):
			idx.date = i
		case strings.ToLower(domain.ColumnRegion):
			idx.region = i
		case strings.ToLower(domain.ColumnRate):
			idx.rate = i
		}
	}

	required := []struct {
		name string
		pos  int
	}{
		{domain.ColumnDate, idx.date},
		{domain.ColumnRegion, idx.region},
		{domain.ColumnRate, idx.rate},
	}
	for _, col := range required {
		if col.pos < 0 {
			return idx, apperrors.NewParseError(1, col.name, "", errMissingColumn)
		}
	}
	return idx, nil
}

func normalizeColumn(col string) string {
	col = strings.TrimSpace(col)
	col = strings.TrimLeft(col, "\u200B\u200C\u200D\u2060\uFEFF")
	return strings.ToLower(strings.TrimSpace(col))
}

func parseRow(row []string, cols columnIndex, line int) (domain.RateRecord, error) {
	rec := domain.RateRecord{Rate: math.NaN()}

	if cell, ok := cellValue(row, cols.date); ok {
		date, err := parseDate(cell)
		if err != nil {
			return rec, apperrors.NewParseError(line, domain.ColumnDate, cell, err)
		}
		rec.Date = date
	}

	if cell, ok := cellValue(row, cols.region); ok {
		rec.Region = cell
	}

	if cell, ok := cellValue(row, cols.rate); ok {
		rate, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return rec, apperrors.NewParseError(line, domain.ColumnRate, cell, err)
		}
		if math.IsInf(rate, 0) {
			return rec, apperrors.NewParseError(line, domain.ColumnRate, cell, errInfiniteRate)
		}
		rec.Rate = rate
	}

	return rec, nil
}

// cellValue returns the trimmed cell at i, or ok=false when the cell is
// absent, empty or an NA token.
func cellValue(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	cell := strings.TrimSpace(row[i])
	if cell == "" || naTokens[cell] {
		return "", false
	}
	return cell, true
}

// parseDate tries each accepted layout in turn
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// csvError converts a reader failure into a parse error naming its line
func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return apperrors.NewParseError(perr.Line, "record", "", perr.Err)
	}
	return err
}

// Clean drops every record with a missing field. Survivors keep their order
// and values; the number of dropped records is returned.
func Clean(records []domain.RateRecord) ([]domain.RateRecord, int) {
	cleaned := make([]domain.RateRecord, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			cleaned = append(cleaned, r)
		}
	}
	return cleaned, len(records) - len(cleaned)
}
