// Package charts turns analysis results into chart descriptions and draws
// them through a Renderer.
//
// Builders (Trend, EventComparison, SeasonalBars, RegionalBoxes) are pure and
// produce LineChart, BarChart and BoxChart values. Renderers decide where the
// charts go:
//
//   - PNGRenderer writes one PNG per chart with gonum/plot
//   - TerminalRenderer draws line charts with asciigraph and bars and boxes
//     with lipgloss styling
//   - MultiRenderer fans out to several renderers
//   - NopRenderer discards everything
//
// No renderer blocks waiting for a viewer.
package charts
