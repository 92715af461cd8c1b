// Package terminal renders run results as ANSI-colored cards and reports as
// aligned comparison tables.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/report"
)

const defaultWidth = 100

// Renderer pretty-prints a run as turn cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the run as ANSI-colored cards to w: a header with the run's
// identity and totals, one card per turn, then the final result text.
func (r *Renderer) Render(w io.Writer, res *core.RunResult) error {
	width := r.termWidth()

	writeHeader(w, res)

	for _, turn := range res.Turns {
		writeTurn(w, turn, width)
	}

	if res.ResultText != "" {
		writeResult(w, res.ResultText, width)
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the run identity block.
func writeHeader(w io.Writer, res *core.RunResult) {
	// Row 1: task (or session) + outcome + diff stats. The pass marker only
	// shows for runs that carry benchmark metadata; a bare parsed capture
	// has nothing to grade against.
	title := res.TaskName
	if title == "" && res.SessionID != "" {
		title = "Run " + res.SessionID
	}
	row1 := styleTitle.Render(title)
	if res.TaskName != "" {
		if res.Correct {
			row1 += "  " + stylePass.Render("✓ PASS")
		} else {
			row1 += "  " + styleFail.Render("✗ FAIL")
		}
	}
	if ds := core.ComputeDiffStats(res); ds != nil {
		var stats []string
		if ds.Added > 0 {
			stats = append(stats, styleAdded.Render(fmt.Sprintf("+%s", formatNumber(ds.Added))))
		}
		if ds.Changed > 0 {
			stats = append(stats, styleChanged.Render(fmt.Sprintf("~%s", formatNumber(ds.Changed))))
		}
		if ds.Removed > 0 {
			stats = append(stats, styleRemoved.Render(fmt.Sprintf("-%s", formatNumber(ds.Removed))))
		}
		if len(stats) > 0 {
			row1 += "  " + strings.Join(stats, " ")
		}
	}
	fmt.Fprintln(w, row1)

	// Row 2: mode  model  rep  session
	var parts []string
	if res.ModeName != "" {
		parts = append(parts, res.ModeName)
	}
	if res.ModelName != "" {
		parts = append(parts, res.ModelName)
	}
	if res.Repetition > 0 {
		parts = append(parts, fmt.Sprintf("rep %d", res.Repetition))
	}
	if res.TaskName != "" && res.SessionID != "" {
		parts = append(parts, res.SessionID)
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
	}

	fmt.Fprintln(w)
	writeRunStats(w, res)

	if u := res.Usage(); u != (core.Usage{}) {
		fmt.Fprintln(w)
		writeUsage(w, u)
	}
}

type stat struct {
	value string
	label string
}

// writeRunStats renders cost, turn, and duration counters.
func writeRunStats(w io.Writer, res *core.RunResult) {
	stats := []stat{
		{fmt.Sprintf("$%.4f", res.TotalCostUSD), "COST"},
		{formatNumber(res.NumTurns), "TURNS"},
		{formatNumber(res.ToolCallTotal()), "TOOLS"},
	}
	if res.DurationMS > 0 {
		stats = append(stats, stat{formatDuration(time.Duration(res.DurationMS) * time.Millisecond), "DURATION"})
	}
	writeStats(w, stats)
}

// writeUsage renders token counters.
func writeUsage(w io.Writer, u core.Usage) {
	stats := []stat{
		{formatNumber(u.InputTokens), "INPUT"},
		{formatNumber(u.OutputTokens), "OUTPUT"},
	}
	if u.CacheReadTokens > 0 {
		stats = append(stats, stat{formatNumber(u.CacheReadTokens), "CACHE READ"})
	}
	if u.CacheCreationTokens > 0 {
		stats = append(stats, stat{formatNumber(u.CacheCreationTokens), "CACHE WRITE"})
	}
	writeStats(w, stats)
}

// writeStats renders counters in two rows: values then labels.
func writeStats(w io.Writer, stats []stat) {
	var values, labels []string
	for _, s := range stats {
		colWidth := max(len(s.value), len(s.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, s.value))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, s.label))
	}
	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// writeTurn renders a single turn card: index badge, token meta, tool lines.
func writeTurn(w io.Writer, turn core.Turn, width int) {
	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	writeSeparator(w, width)

	badge := styleTurnBadge.Render(fmt.Sprintf("TURN %d", turn.Index+1))
	var metaParts []string
	if ctx := turn.ContextTokens(); ctx > 0 {
		metaParts = append(metaParts, formatNumber(ctx)+" ctx")
	}
	if turn.OutputTokens > 0 {
		metaParts = append(metaParts, formatNumber(turn.OutputTokens)+" out")
	}
	header := badge
	if len(metaParts) > 0 {
		header += "    " + styleMeta.Render(strings.Join(metaParts, "    "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+header)

	for _, tc := range turn.ToolCalls {
		name := tc.Name
		if name == "" {
			name = "tool"
		}
		summary := extractToolSummary(strings.ToLower(name), tc.Input)
		toolLine := styleToolName.Render("⚙ " + name)
		if summary != "" {
			nameWidth := lipgloss.Width("⚙ " + name + "  ")
			toolLine += "  " + styleToolDetail.Render(truncate(summary, contentWidth-nameWidth))
		}
		fmt.Fprintln(w, "  "+toolLine)
	}
}

// writeResult renders the agent's final message, one line per source line.
func writeResult(w io.Writer, text string, width int) {
	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	writeSeparator(w, width)
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+styleResultBadge.Render("RESULT"))
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(w, "  "+truncate(line, contentWidth))
	}
}

// RenderReport writes an aggregate report as an aligned comparison table
// followed by run-wide totals.
func (r *Renderer) RenderReport(w io.Writer, rep *report.Report) error {
	headers := []string{"TASK", "MODE", "MODEL", "RUNS", "PASS", "RATE", "TURNS", "COST", "TOOLS"}
	rows := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, []string{
			orDash(row.TaskName),
			orDash(row.ModeName),
			orDash(row.ModelName),
			formatNumber(row.Runs),
			formatNumber(row.Passed),
			fmt.Sprintf("%.0f%%", row.PassRate*100),
			fmt.Sprintf("%.1f", row.MeanTurns),
			fmt.Sprintf("$%.4f", row.MeanCostUSD),
			formatNumber(toolTotal(row.ToolCalls)),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Fprintln(w, styleStatLabel.Render(formatTableRow(headers, widths)))
	for _, row := range rows {
		fmt.Fprintln(w, formatTableRow(row, widths))
	}

	fmt.Fprintln(w)
	writeStats(w, []stat{
		{formatNumber(rep.Totals.Runs), "RUNS"},
		{formatNumber(rep.Totals.Passed), "PASSED"},
		{fmt.Sprintf("$%.4f", rep.Totals.TotalCostUSD), "COST"},
	})
	if rep.Totals.Usage != (core.Usage{}) {
		fmt.Fprintln(w)
		writeUsage(w, rep.Totals.Usage)
	}
	return nil
}

// formatTableRow aligns cells into columns: names left, numbers right.
func formatTableRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i < 3 {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func toolTotal(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Format helpers shared with render/html's template funcs.

func formatDuration(d time.Duration) string {
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

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
