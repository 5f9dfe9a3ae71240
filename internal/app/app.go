package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"unemploycli/internal/analysis"
	"unemploycli/internal/charts"
	"unemploycli/internal/config"
	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/exporter"
	"unemploycli/internal/infrastructure"
	"unemploycli/internal/operations"
	"unemploycli/internal/validation"
	"unemploycli/pkg/contracts"
)

// Options carries what the configuration does not
type Options struct {
	// BaseDir resolves relative paths; empty means the working directory
	BaseDir string

	// Stdout receives the text report and terminal charts; nil means os.Stdout
	Stdout io.Writer

	// Logger replaces the configured logger when set
	Logger *slog.Logger
}

// App is one configured analysis run
type App struct {
	Config   *config.Config
	Paths    *config.Paths
	Logger   *slog.Logger
	Tracing  *infrastructure.TracingProviders
	Metrics  *infrastructure.Metrics
	Renderer charts.Renderer

	text      *exporter.TextWriter
	runner    *operations.Runner
	validator *validation.FileValidator
}

// New builds an App from cfg. Close must be called once the run is over.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	paths, err := config.GetPaths(cfg, opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logCfg := cfg.Logging
		logCfg.FilePath = paths.LogFile
		logger, err = infrastructure.InitializeLogger(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewDataFileError("setup", paths.BaseDir, err)
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(infrastructure.WithComponent(logger, "validation"))
	for _, dir := range outputDirs(cfg, paths) {
		if err := validator.ValidateOutputDirectory(dir); err != nil {
			return nil, apperrors.NewDataFileError("setup", dir, err)
		}
	}

	tracing, err := infrastructure.InitializeTracing(cfg.Telemetry, paths.TraceFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	metrics := infrastructure.NewMetrics()
	a := &App{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Tracing:   tracing,
		Metrics:   metrics,
		Renderer:  newRenderer(cfg.Charts, paths.ChartsDir, stdout, logger, metrics),
		text:      exporter.NewTextWriter(stdout),
		runner:    operations.NewRunner(tracing.Tracer, metrics, logger),
		validator: validator,
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", paths.DatasetFile),
		slog.String("chart_mode", cfg.Charts.Mode))

	return a, nil
}

// outputDirs lists the directories the configured outputs write into
func outputDirs(cfg *config.Config, paths *config.Paths) []string {
	var dirs []string
	if cfg.Charts.RendersPNG() {
		dirs = append(dirs, paths.ChartsDir)
	}
	if cfg.Output.JSON || cfg.Output.Workbook || cfg.Output.Metrics {
		dirs = append(dirs, paths.ReportsDir)
	}
	return dirs
}

// Run executes the pipeline once and returns the finished report. On failure
// the report holds whatever was computed before the failing step, or is nil
// when no analysis ran. A run ID already carried by ctx is kept.
func (a *App) Run(ctx context.Context) (*analysis.Report, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	p := &pipeline{app: a, runID: runID}
	state, err := a.runner.Execute(ctx, runID, p.steps())
	if err != nil {
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Analysis failed",
			slog.String("status", string(state.GetStatus())))
		return p.report, err
	}

	a.Logger.InfoContext(ctx, "Analysis complete",
		slog.Duration("duration", state.Duration()),
		slog.String("trace_id", infrastructure.TraceIDFromContext(ctx)))
	return p.report, nil
}

// Close flushes traces and releases the log file
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Tracing != nil {
		errs = append(errs, a.Tracing.Shutdown(ctx))
	}
	errs = append(errs, infrastructure.CloseLogFile())
	return errors.Join(errs...)
}
