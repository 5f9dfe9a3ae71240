package config

// Application constants
const (
	AppName = "Unemployment Analysis"

	// EnvPrefix namespaces every environment variable, e.g. UNEMP_DATASET_PATH
	EnvPrefix = "UNEMP"

	// Dataset
	DefaultDatasetFile = "unemployment.csv"

	// Analysis
	DefaultCutoff      = "2020-03-01"
	DefaultEventName   = "Covid-19"
	DefaultPreviewRows = 5

	// Charts
	ChartModePNG      = "png"
	ChartModeTerminal = "terminal"
	ChartModeBoth     = "both"
	ChartModeNone     = "none"

	DefaultChartWidthInches  = 6.4
	DefaultChartHeightInches = 4.8
	DefaultTerminalWidth     = 72
	DefaultTerminalHeight    = 12

	// Output locations (relative to the base directory)
	DefaultChartsDir  = "out/charts"
	DefaultReportsDir = "out/reports"
	DefaultLogsDir    = "logs"

	ReportJSONFile     = "report.json"
	ReportWorkbookFile = "report.xlsx"
	MetricsFile        = "metrics.prom"
	LogFile            = "analyze.log"
	TraceFile          = "traces.json"

	// Telemetry
	DefaultServiceName = "unemployment-analysis"
)

// configFileCandidates are searched, in order, when no config file is given
var configFileCandidates = []string{
	"analyze.yaml",
	"configs/analyze.yaml",
}
