package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/sonnes/tally/core"
)

// renderToolCallBlock renders one tool invocation as a card: a header with
// the tool glyph and name, then the input as highlighted JSON.
func (r *Renderer) renderToolCallBlock(tc core.ToolCall) (template.HTML, error) {
	var sb strings.Builder
	sb.WriteString(`<div class="bg-slate-50 dark:bg-slate-900 border border-slate-200 dark:border-slate-700 rounded-lg overflow-hidden">`)

	name := tc.Name
	if name == "" {
		name = "tool"
	}
	sb.WriteString(`<div class="px-4 py-2 border-b border-slate-200 dark:border-slate-700 flex items-center gap-2 text-slate-900 dark:text-white">`)
	sb.WriteString(`<span class="text-slate-400">` + string(toolIcon(tc.Name)) + `</span>`)
	sb.WriteString(`<span class="text-xs font-semibold font-mono">` + template.HTMLEscapeString(name) + `</span>`)
	sb.WriteString(`</div>`)

	if input := formatToolInput(tc.Input); input != "" {
		// Render the input as a fenced JSON block so chroma highlights it.
		fenced := "```json\n" + input + "\n```"
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(fenced), &buf); err != nil {
			sb.WriteString(`<pre class="px-4 py-3 text-xs font-mono overflow-x-auto">`)
			sb.WriteString(template.HTMLEscapeString(input))
			sb.WriteString(`</pre>`)
		} else {
			sb.WriteString(`<div class="px-4 py-3 text-xs overflow-x-auto">`)
			sb.Write(buf.Bytes())
			sb.WriteString(`</div>`)
		}
	}

	sb.WriteString(`</div>`)
	return template.HTML(sb.String()), nil
}

// renderResultText renders the agent's final message as markdown.
func (r *Renderer) renderResultText(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return template.HTML(`<div class="prose dark:prose-invert max-w-none">` + buf.String() + `</div>`), nil
}

// toolIcon returns the header glyph for a tool name.
func toolIcon(name string) template.HTML {
	switch strings.ToLower(name) {
	case "bash":
		return "&#x276F;"
	case "read":
		return "&#128196;"
	case "write":
		return "&#128221;"
	case "edit":
		return "&#9998;"
	case "glob", "grep":
		return "&#128269;"
	default:
		return "&#9881;"
	}
}

// formatToolInput formats a tool's input map as indented JSON.
func formatToolInput(input map[string]any) string {
	if len(input) == 0 {
		return ""
	}
	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}
