package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestRun() *core.RunResult {
	return &core.RunResult{
		SessionID:  "sess-abc-123",
		TaskName:   "fix-parser",
		ModeName:   "agentic",
		ModelName:  "gpt-5-codex",
		Repetition: 1,
		Correct:    true,
		NumTurns:   2,
		Turns: []core.Turn{
			{
				Index:        0,
				InputTokens:  3000,
				OutputTokens: 400,
				ToolCalls: []core.ToolCall{
					{Name: "Bash", Input: map[string]any{"command": "grep -n parse main.go"}, TurnIndex: 0},
					{Name: "Read", Input: map[string]any{"file_path": "parser/parse.go"}, TurnIndex: 0},
				},
			},
			{
				Index:        1,
				InputTokens:  2000,
				OutputTokens: 1600,
				ToolCalls: []core.ToolCall{
					{Name: "Edit", Input: map[string]any{
						"file_path":  "parser/parse.go",
						"old_string": "return nil",
						"new_string": "return out, nil",
					}, TurnIndex: 1},
				},
			},
		},
		ResultText:        "Fixed the parser in `parse.go`.\n\n- corrected the return value\n- added a regression test",
		TotalCostUSD:      0.0843,
		TotalInputTokens:  5000,
		TotalOutputTokens: 2000,
		DurationMS:        150_000,
	}
}

func TestRenderFullPage(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	err := r.Render(&buf, buildTestRun())
	require.NoError(t, err)

	html := buf.String()

	t.Run("page structure", func(t *testing.T) {
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, `<html lang="en">`)
		assert.Contains(t, html, "</html>")
	})

	t.Run("tailwind CDN", func(t *testing.T) {
		assert.Contains(t, html, "@tailwindcss/browser@4")
	})

	t.Run("inter font", func(t *testing.T) {
		assert.Contains(t, html, "fonts.googleapis.com")
		assert.Contains(t, html, "Inter")
	})

	t.Run("title", func(t *testing.T) {
		assert.Contains(t, html, "<title>fix-parser</title>")
	})

	t.Run("metadata", func(t *testing.T) {
		assert.Contains(t, html, "agentic")
		assert.Contains(t, html, "gpt-5-codex")
		assert.Contains(t, html, "rep 1")
		assert.Contains(t, html, "sess-abc-123")
	})

	t.Run("outcome badge", func(t *testing.T) {
		assert.Contains(t, html, ">Pass</span>")
	})

	t.Run("stats", func(t *testing.T) {
		assert.Contains(t, html, "$0.0843")
		assert.Contains(t, html, "5,000")
		assert.Contains(t, html, "2,000")
		assert.Contains(t, html, "2m 30s")
	})
}

func TestRenderTurnCards(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	err := r.Render(&buf, buildTestRun())
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `id="turn-0"`)
	assert.Contains(t, html, `id="turn-1"`)
	assert.Contains(t, html, "Turn 1")
	assert.Contains(t, html, "Turn 2")
	assert.Contains(t, html, "3,000 ctx")
	assert.Contains(t, html, "400 out")
	assert.Contains(t, html, "Bash")
	assert.Contains(t, html, "grep -n parse main.go")
	assert.Equal(t, 3, countOccurrences(html, "font-semibold font-mono"))
}

func TestRenderDiffStats(t *testing.T) {
	r := New()
	run := &core.RunResult{
		SessionID: "diff-1",
		Turns: []core.Turn{
			{Index: 0, ToolCalls: []core.ToolCall{
				{Name: "Write", Input: map[string]any{
					"file_path": "a.go",
					"content":   "package a\n\nfunc A() {}\n",
				}},
			}},
		},
	}

	var buf bytes.Buffer
	err := r.Render(&buf, run)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "+3")
	assert.Contains(t, html, "~1")
}

func TestRenderResultMarkdown(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	err := r.Render(&buf, buildTestRun())
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `class="prose`)
	assert.Contains(t, html, "<code>parse.go</code>")
	assert.Contains(t, html, "<li>")
}

func TestRenderUngradedRun(t *testing.T) {
	r := New()
	run := &core.RunResult{
		SessionID: "bare-session",
		NumTurns:  1,
		Turns:     []core.Turn{{Index: 0}},
	}

	var buf bytes.Buffer
	err := r.Render(&buf, run)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Run bare-session</title>")
	assert.NotContains(t, html, ">Pass</span>")
	assert.NotContains(t, html, ">Fail</span>")
}

func TestRenderEmptyRun(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	err := r.Render(&buf, &core.RunResult{})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "<title>tally</title>")
}

func TestRenderReportPage(t *testing.T) {
	r := New()

	runs := []*core.RunResult{
		{SessionID: "s1", TaskName: "fix-parser", ModeName: "agentic", ModelName: "gpt-5-codex", Correct: true, TotalCostUSD: 0.02, Turns: []core.Turn{{Index: 0}, {Index: 1}}},
		{SessionID: "s2", TaskName: "fix-parser", ModeName: "agentic", ModelName: "gpt-5-codex", Correct: false, TotalCostUSD: 0.04, Turns: []core.Turn{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}}},
	}
	rep := report.Build(runs)
	entries := []core.RunEntry{
		{SessionID: "s1", TaskName: "fix-parser", ModeName: "agentic", ModelName: "gpt-5-codex", Repetition: 1, Correct: true, NumTurns: 2, TotalCostUSD: 0.02, Href: "fix-parser-agentic-gpt-5-codex-1.html"},
		{SessionID: "s2", TaskName: "fix-parser", ModeName: "agentic", ModelName: "gpt-5-codex", Repetition: 2, Correct: false, NumTurns: 4, TotalCostUSD: 0.04, Href: "fix-parser-agentic-gpt-5-codex-2.html"},
	}

	var buf bytes.Buffer
	err := r.RenderReport(&buf, rep, entries)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Benchmark report")
	assert.Contains(t, html, "2 runs")
	assert.Contains(t, html, "1 passed")
	assert.Contains(t, html, "50%")
	assert.Contains(t, html, "3.0")
	assert.Contains(t, html, "$0.0300")
	assert.Contains(t, html, `href="fix-parser-agentic-gpt-5-codex-1.html"`)
	assert.Contains(t, html, `href="fix-parser-agentic-gpt-5-codex-2.html"`)
	assert.Contains(t, html, "rep 2")
}

func TestRenderReportRunHrefOverride(t *testing.T) {
	r := New()
	r.RunHref = func(sessionID string) string { return "/run/" + sessionID }

	rep := report.Build(nil)
	entries := []core.RunEntry{
		{SessionID: "s1", TaskName: "fix-parser", NumTurns: 2, Href: "s1.html"},
	}

	var buf bytes.Buffer
	err := r.RenderReport(&buf, rep, entries)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `href="/run/s1"`)
	assert.NotContains(t, html, `href="s1.html"`)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-500, "-500"},
		{-1500, "-1,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestFormatDurationMS(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, ""},
		{-10, ""},
		{500, "<1s"},
		{45_000, "45s"},
		{60_000, "1m"},
		{90_000, "1m 30s"},
		{3_600_000, "1h"},
		{5_400_000, "1h 30m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDurationMS(tt.ms))
	}
}

func countOccurrences(s, substr string) int {
	return strings.Count(s, substr)
}
