package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToolSummary(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		input  map[string]any
		expect string
	}{
		{
			name:   "bash command",
			tool:   "bash",
			input:  map[string]any{"command": "git status"},
			expect: "git status",
		},
		{
			name:   "read file",
			tool:   "read",
			input:  map[string]any{"file_path": "/tmp/test.go"},
			expect: "/tmp/test.go",
		},
		{
			name:   "write file",
			tool:   "write",
			input:  map[string]any{"file_path": "/tmp/out.go", "content": "package main"},
			expect: "/tmp/out.go",
		},
		{
			name:   "edit file",
			tool:   "edit",
			input:  map[string]any{"file_path": "/tmp/x.go", "old_string": "foo"},
			expect: "/tmp/x.go",
		},
		{
			name:   "glob pattern",
			tool:   "glob",
			input:  map[string]any{"pattern": "**/*.go"},
			expect: "**/*.go",
		},
		{
			name:   "grep pattern",
			tool:   "grep",
			input:  map[string]any{"pattern": "func main"},
			expect: "func main",
		},
		{
			name:   "nil input",
			tool:   "todoread",
			input:  nil,
			expect: "",
		},
		{
			name:   "unknown tool with fallback key",
			tool:   "websearch",
			input:  map[string]any{"query": "golang testing"},
			expect: "golang testing",
		},
		{
			name:   "unknown tool no matching keys",
			tool:   "custom",
			input:  map[string]any{"foo": "bar"},
			expect: "",
		},
		{
			name:   "non-string field ignored",
			tool:   "bash",
			input:  map[string]any{"command": 42},
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractToolSummary(tt.tool, tt.input)
			assert.Equal(t, tt.expect, got)
		})
	}
}
