package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"unemploycli/internal/analysis"
	apperrors "unemploycli/internal/errors"
)

// WriteJSON writes the report as indented JSON to path
func WriteJSON(report *analysis.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewRenderError("export", path, fmt.Errorf("marshal report: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewRenderError("export", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return apperrors.NewRenderError("export", path, err)
	}
	return nil
}
