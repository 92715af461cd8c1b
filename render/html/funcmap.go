package html

import (
	"fmt"
	"html/template"
	"time"
)

// funcMap returns the helper functions available to all templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatNumber": formatNumber,
		"formatCost":   formatCost,
		"percent":      percent,
		"mean":         formatMean,
	}
}

// formatNumber formats an integer with comma separators (e.g. 1234567 -> "1,234,567").
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// formatCost formats a dollar amount with sub-cent precision.
func formatCost(v float64) string {
	return fmt.Sprintf("$%.4f", v)
}

// percent formats a 0..1 ratio as a whole percentage.
func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatMean(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// formatDurationMS renders a millisecond wall-clock duration like "2m 30s".
// Zero and negative durations render as the empty string.
func formatDurationMS(ms int64) string {
	if ms <= 0 {
		return ""
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return "<1s"
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
