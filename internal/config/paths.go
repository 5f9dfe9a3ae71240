package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location used by a run.
// This is the single source of truth for file paths; relative entries in the
// configuration are resolved against BaseDir.
type Paths struct {
	BaseDir     string
	DatasetFile string
	ChartsDir   string
	ReportsDir  string
	LogsDir     string

	// Well-known output files
	LogFile        string
	TraceFile      string
	ReportJSON     string
	ReportWorkbook string
	MetricsFile    string
}

// GetPaths resolves the paths of cfg relative to baseDir. An empty baseDir
// means the current working directory, which is where the dataset lives by
// default.
func GetPaths(cfg *Config, baseDir string) (*Paths, error) {
	if cfg == nil {
		cfg = Default()
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	logFile := resolve(cfg.Logging.FilePath)

	p := &Paths{
		BaseDir:     baseDir,
		DatasetFile: resolve(cfg.Dataset.Path),
		ChartsDir:   resolve(cfg.Charts.Dir),
		ReportsDir:  resolve(cfg.Output.ReportsDir),
		LogsDir:     filepath.Dir(logFile),
		LogFile:     logFile,
		TraceFile:   resolve(cfg.Telemetry.TraceFile),
	}
	p.ReportJSON = p.GetReportPath(ReportJSONFile)
	p.ReportWorkbook = p.GetReportPath(ReportWorkbookFile)
	p.MetricsFile = p.GetReportPath(MetricsFile)
	return p, nil
}

// EnsureDirectories creates the output directories if they don't exist.
// The dataset directory is left to the provisioner.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.ChartsDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("dataset_file", p.DatasetFile),
		slog.String("charts_dir", p.ChartsDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("log_file", p.LogFile))
}
