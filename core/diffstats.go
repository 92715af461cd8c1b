package core

import "strings"

// DiffStats summarizes file-level edit statistics across a run.
type DiffStats struct {
	Added   int `json:"added,omitempty"`   // lines added (Write content + Edit new_string)
	Removed int `json:"removed,omitempty"` // lines removed (Edit old_string)
	Changed int `json:"changed,omitempty"` // unique files touched
}

// ComputeDiffStats walks all tool calls in the run and computes aggregate
// line-level diff statistics. It must be called BEFORE compact
// transformation, which mutates tool input strings.
func ComputeDiffStats(r *RunResult) *DiffStats {
	files := make(map[string]bool)
	var added, removed int

	for _, turn := range r.Turns {
		for _, tc := range turn.ToolCalls {
			if tc.Input == nil {
				continue
			}

			switch strings.ToLower(tc.Name) {
			case "write":
				if fp := stringVal(tc.Input, "file_path"); fp != "" {
					files[fp] = true
				}
				if content := stringVal(tc.Input, "content"); content != "" {
					added += countLines(content)
				}
			case "edit":
				if fp := stringVal(tc.Input, "file_path"); fp != "" {
					files[fp] = true
				}
				if old := stringVal(tc.Input, "old_string"); old != "" {
					removed += countLines(old)
				}
				if ns := stringVal(tc.Input, "new_string"); ns != "" {
					added += countLines(ns)
				}
			}
		}
	}

	if added == 0 && removed == 0 && len(files) == 0 {
		return nil
	}

	return &DiffStats{
		Added:   added,
		Removed: removed,
		Changed: len(files),
	}
}

func stringVal(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
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
