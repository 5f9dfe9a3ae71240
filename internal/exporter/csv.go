package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"unemploycli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
	// Exclusive fails with os.ErrExist instead of touching an existing file.
	// A file it created is removed again when writing fails.
	Exclusive bool
}

// openFile is swapped in tests to simulate a failing disk
var openFile = os.OpenFile

// WriteCSV writes data to a CSV file with the given options. Missing parent
// directories are created.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)),
		slog.Bool("exclusive", options.Exclusive))

	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if options.Exclusive {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}

	file, err := openFile(filePath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	err = writeRows(file, options)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err != nil && options.Exclusive {
		if rmErr := os.Remove(filePath); rmErr != nil {
			w.logger.Warn("Failed to remove partial CSV file",
				slog.String("file_path", filePath),
				slog.String("error", rmErr.Error()))
		}
	}
	return err
}

func writeRows(out io.Writer, options WriteOptions) error {
	writer := csv.NewWriter(out)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// RateHeaders is the header row of a rate dataset file
func RateHeaders() []string {
	return []string{domain.ColumnDate, domain.ColumnRegion, domain.ColumnRate}
}

// RateRows converts records to dataset rows in column order
func RateRows(records []domain.RateRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			formatDate(r.Date),
			r.Region,
			formatRate(r.Rate),
		}
	}
	return rows
}
