// Package compact provides a Transformer that replaces verbose tool inputs
// with short summaries for compact run viewing.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/tally/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	// MaxResultLines truncates the final result text when it exceeds this
	// many lines. Zero keeps the text whole.
	MaxResultLines int
}

// Compactor replaces verbose tool inputs with line-count summaries.
type Compactor struct {
	maxResultLines int
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{maxResultLines: cfg.MaxResultLines}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(res *core.RunResult) error {
	for i := range res.Turns {
		for j := range res.Turns[i].ToolCalls {
			compactToolCall(&res.Turns[i].ToolCalls[j])
		}
	}
	if c.maxResultLines > 0 {
		res.ResultText = truncateLines(res.ResultText, c.maxResultLines)
	}
	return nil
}

func compactToolCall(tc *core.ToolCall) {
	if tc.Input == nil {
		return
	}
	switch strings.ToLower(tc.Name) {
	case "write":
		summarizeMapField(tc.Input, "content")
	case "edit":
		summarizeMapField(tc.Input, "old_string")
		summarizeMapField(tc.Input, "new_string")
	}
}

// lineSummary returns a summary like "[content: 245 lines]" or "[old_string: 1 line]".
func lineSummary(label, s string) string {
	n := countLines(s)
	if n == 1 {
		return fmt.Sprintf("[%s: 1 line]", label)
	}
	return fmt.Sprintf("[%s: %d lines]", label, n)
}

// summarizeMapField replaces a string field in a map with a line-count summary.
func summarizeMapField(m map[string]any, key string) {
	v, ok := m[key]
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		return
	}
	m[key] = lineSummary(key, s)
}

// truncateLines keeps the first max lines of s and notes how many were cut.
func truncateLines(s string, max int) string {
	n := countLines(s)
	if n <= max {
		return s
	}
	lines := strings.Split(s, "\n")
	head := strings.Join(lines[:max], "\n")
	cut := n - max
	if cut == 1 {
		return head + "\n[truncated: 1 more line]"
	}
	return head + fmt.Sprintf("\n[truncated: %d more lines]", cut)
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}
