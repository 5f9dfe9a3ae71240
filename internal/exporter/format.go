package exporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"unemploycli/pkg/contracts/domain"
)

// noData is printed where a statistic has no value
const noData = "no data"

// formatRate formats a rate the way dataframe writers do: shortest exact
// decimal with at least one fractional digit (6.0, 10.2). NaN is empty.
func formatRate(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") && !math.IsInf(f, 0) {
		s += ".0"
	}
	return s
}

// formatDate formats a date in the dataset layout; the zero time is empty
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

// formatStat formats a statistic for human-readable output
func formatStat(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", f)
}

// formatMean formats an optional mean, "no data" when absent
func formatMean(m *float64) string {
	if m == nil {
		return noData
	}
	return formatStat(*m)
}

// formatPercent formats an optional percentage change with its sign
func formatPercent(p *float64) string {
	if p == nil {
		return noData
	}
	return fmt.Sprintf("%+.2f%%", *p)
}
