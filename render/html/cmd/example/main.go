// Generates an example HTML run page and writes it to stdout.
// Usage: go run ./render/html/cmd/example > example.html
package main

import (
	"os"

	"github.com/sonnes/tally/core"
	htmlrender "github.com/sonnes/tally/render/html"
)

func main() {
	res := &core.RunResult{
		SessionID:  "8397fc7c-39b9-4e25-81da-ed47a574a88a",
		TaskName:   "fix-ndjson-parser",
		ModeName:   "agentic",
		ModelName:  "gpt-5-codex",
		Repetition: 1,
		Correct:    true,
		NumTurns:   4,
		Turns: []core.Turn{
			{
				Index:        0,
				InputTokens:  12000,
				OutputTokens: 350,
				ToolCalls: []core.ToolCall{
					{Name: "Bash", Input: map[string]any{"command": "go test ./parser/... -run TestDecode -count=1"}},
					{Name: "Read", Input: map[string]any{"file_path": "parser/decode.go"}},
				},
			},
			{
				Index:        1,
				InputTokens:  8000,
				OutputTokens: 120,
				ToolCalls: []core.ToolCall{
					{Name: "Grep", Input: map[string]any{"pattern": "json.Unmarshal", "path": "parser"}, TurnIndex: 1},
				},
			},
			{
				Index:        2,
				InputTokens:  15000,
				OutputTokens: 4500,
				ToolCalls: []core.ToolCall{
					{Name: "Edit", Input: map[string]any{
						"file_path":  "parser/decode.go",
						"old_string": "if err != nil {\n\treturn nil\n}",
						"new_string": "if err != nil {\n\treturn nil, fmt.Errorf(\"decode line %d: %w\", lineno, err)\n}",
					}, TurnIndex: 2},
					{Name: "Write", Input: map[string]any{
						"file_path": "parser/decode_test.go",
						"content":   "package parser\n\n// regression test for malformed NDJSON lines\n",
					}, TurnIndex: 2},
				},
			},
			{
				Index:        3,
				InputTokens:  10000,
				OutputTokens: 200,
				ToolCalls: []core.ToolCall{
					{Name: "Bash", Input: map[string]any{"command": "go test ./... -count=1"}, TurnIndex: 3},
				},
			},
		},
		ResultText: "Fixed the NDJSON decoder to surface line-level errors instead of " +
			"silently returning `nil`.\n\n- `decode.go` now wraps the unmarshal error " +
			"with the line number\n- added a regression test covering malformed lines\n\n" +
			"All tests pass.",
		CorrectnessReason:        "verifier accepted the patched decoder",
		TotalCostUSD:             0.0843,
		TotalInputTokens:         45000,
		TotalOutputTokens:        5170,
		TotalCacheReadTokens:     35000,
		TotalCacheCreationTokens: 8200,
		DurationMS:               154_000,
	}

	r := htmlrender.New()
	if err := r.Render(os.Stdout, res); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
