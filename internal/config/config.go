package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "unemploycli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// DatasetConfig locates the rate dataset
type DatasetConfig struct {
	Path string `yaml:"path" split_words:"true" validate:"required"`
}

// AnalysisConfig contains the parameters of the analysis steps
type AnalysisConfig struct {
	Cutoff      string `yaml:"cutoff" split_words:"true" validate:"required,datetime=2006-01-02"`
	EventName   string `yaml:"event_name" split_words:"true" validate:"required"`
	PreviewRows int    `yaml:"preview_rows" split_words:"true" validate:"min=0,max=100"`
}

// ChartsConfig contains chart rendering configuration
type ChartsConfig struct {
	Mode           string  `yaml:"mode" split_words:"true" validate:"oneof=png terminal both none"`
	Dir            string  `yaml:"dir" split_words:"true" validate:"required"`
	WidthInches    float64 `yaml:"width_inches" split_words:"true" validate:"gt=0"`
	HeightInches   float64 `yaml:"height_inches" split_words:"true" validate:"gt=0"`
	TerminalWidth  int     `yaml:"terminal_width" split_words:"true" validate:"min=10"`
	TerminalHeight int     `yaml:"terminal_height" split_words:"true" validate:"min=3"`
}

// OutputConfig controls which report artifacts are written
type OutputConfig struct {
	ReportsDir string `yaml:"reports_dir" split_words:"true" validate:"required"`
	Text       bool   `yaml:"text" split_words:"true"`
	JSON       bool   `yaml:"json" split_words:"true"`
	Workbook   bool   `yaml:"workbook" split_words:"true"`
	Metrics    bool   `yaml:"metrics" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// TelemetryConfig contains tracing configuration
type TelemetryConfig struct {
	Tracing     bool   `yaml:"tracing" split_words:"true"`
	TraceFile   string `yaml:"trace_file" split_words:"true"`
	ServiceName string `yaml:"service_name" split_words:"true" validate:"required"`
}

// Load builds the configuration from defaults, an optional YAML file and
// UNEMP_* environment variables, in increasing order of precedence.
// An empty configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewValidationError("config", "failed to load config file", err).
				WithContext("path", configFile)
		}
	}

	// Fields carry no default tags, so only variables that are actually set
	// override what the defaults and the file produced.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewValidationError("config", "failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the keys present in a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first existing candidate config file
func findConfigFile() string {
	for _, location := range configFileCandidates {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewValidationError("config", "config validation failed", err)
	}
	return nil
}

// CutoffDate parses the configured event cutoff
func (a AnalysisConfig) CutoffDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", a.Cutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cutoff %q: %w", a.Cutoff, err)
	}
	return t, nil
}

// RendersPNG reports whether charts are written as image files
func (c ChartsConfig) RendersPNG() bool {
	return c.Mode == ChartModePNG || c.Mode == ChartModeBoth
}

// RendersTerminal reports whether charts are drawn on the terminal
func (c ChartsConfig) RendersTerminal() bool {
	return c.Mode == ChartModeTerminal || c.Mode == ChartModeBoth
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: DefaultDatasetFile,
		},
		Analysis: AnalysisConfig{
			Cutoff:      DefaultCutoff,
			EventName:   DefaultEventName,
			PreviewRows: DefaultPreviewRows,
		},
		Charts: ChartsConfig{
			Mode:           ChartModePNG,
			Dir:            DefaultChartsDir,
			WidthInches:    DefaultChartWidthInches,
			HeightInches:   DefaultChartHeightInches,
			TerminalWidth:  DefaultTerminalWidth,
			TerminalHeight: DefaultTerminalHeight,
		},
		Output: OutputConfig{
			ReportsDir: DefaultReportsDir,
			Text:       true,
			JSON:       true,
			Workbook:   true,
			Metrics:    true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: DefaultLogsDir + "/" + LogFile,
		},
		Telemetry: TelemetryConfig{
			Tracing:     false,
			TraceFile:   DefaultLogsDir + "/" + TraceFile,
			ServiceName: DefaultServiceName,
		},
	}
}
