package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/exporter"
)

// Ensure makes sure a dataset exists at path. When nothing is there it writes
// the sample dataset and reports created=true; an existing file is left
// untouched.
func Ensure(ctx context.Context, path string, logger *slog.Logger) (created bool, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := ctx.Err(); err != nil {
		return false, apperrors.NewCancellationError("provision", err)
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, apperrors.NewDataFileError("provision", path, fmt.Errorf("path is a directory"))
	case err == nil:
		logger.DebugContext(ctx, "Dataset already present", slog.String("path", path))
		return false, nil
	case !errors.Is(err, os.ErrNotExist):
		return false, apperrors.NewDataFileError("provision", path, err)
	}

	logger.InfoContext(ctx, "Dataset not found, creating sample",
		slog.String("path", path),
		slog.Int("records", len(SampleRates)))

	records := SampleRecords()
	err = exporter.NewCSVWriter(logger).WriteCSV(path, exporter.WriteOptions{
		Headers:   exporter.RateHeaders(),
		Records:   exporter.RateRows(records),
		Exclusive: true,
	})
	if errors.Is(err, os.ErrExist) {
		// Someone else created it between the stat and the write.
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewDataFileError("provision", path, err)
	}

	return true, nil
}
