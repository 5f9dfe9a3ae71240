// Package config provides configuration management for the analysis CLI.
// It loads settings from several sources, validates them and resolves every
// file location the run touches.
//
// # Configuration Sources
//
// Configuration is assembled in the following order, later sources winning:
//
//  1. Default values (Default)
//  2. A YAML file (analyze.yaml or configs/analyze.yaml, or an explicit path)
//  3. Environment variables prefixed with UNEMP_
//
// # Environment Variables
//
//	UNEMP_DATASET_PATH=data/unemployment.csv
//	UNEMP_ANALYSIS_CUTOFF=2020-03-01
//	UNEMP_CHARTS_MODE=terminal
//	UNEMP_LOGGING_LEVEL=debug
//	UNEMP_TELEMETRY_TRACING=true
//
// # Validation
//
// Struct tags are checked with go-playground/validator: the cutoff must be a
// YYYY-MM-DD date, the chart mode one of png, terminal, both or none.
//
// # Path Management
//
// Paths resolves relative configuration entries against a base directory:
//
//	paths, err := config.GetPaths(cfg, "")
//	report := paths.GetReportPath("report.json")
package config
