package html

import (
	"testing"

	"github.com/sonnes/tally/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer() *Renderer {
	return New()
}

func TestRenderToolCallBlock(t *testing.T) {
	r := testRenderer()

	tc := core.ToolCall{
		Name:  "Bash",
		Input: map[string]any{"command": "git status"},
	}

	out, err := r.renderToolCallBlock(tc)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Bash")
	assert.Contains(t, html, "git status")
	assert.Contains(t, html, "rounded-lg")
}

func TestRenderToolCallBlockHighlighting(t *testing.T) {
	r := testRenderer()

	tc := core.ToolCall{
		Name: "Edit",
		Input: map[string]any{
			"file_path":  "main.go",
			"old_string": "foo",
			"new_string": "bar",
		},
	}

	out, err := r.renderToolCallBlock(tc)
	require.NoError(t, err)

	// chroma emits inline-styled spans for the JSON tokens
	html := string(out)
	assert.Contains(t, html, "<span")
	assert.Contains(t, html, "file_path")
	assert.Contains(t, html, "main.go")
}

func TestRenderToolCallBlockNoInput(t *testing.T) {
	r := testRenderer()

	out, err := r.renderToolCallBlock(core.ToolCall{Name: "TodoRead"})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "TodoRead")
	assert.NotContains(t, html, "json")
}

func TestRenderToolCallBlockEmptyName(t *testing.T) {
	r := testRenderer()

	out, err := r.renderToolCallBlock(core.ToolCall{Input: map[string]any{"x": 1}})
	require.NoError(t, err)

	assert.Contains(t, string(out), ">tool</span>")
}

func TestRenderResultText(t *testing.T) {
	r := testRenderer()

	out, err := r.renderResultText("All tests pass.\n\n```go\nfunc main() {}\n```")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `class="prose`)
	assert.Contains(t, html, "All tests pass.")
	assert.Contains(t, html, "<pre")
}

func TestToolIcon(t *testing.T) {
	assert.Equal(t, "&#x276F;", string(toolIcon("Bash")))
	assert.Equal(t, "&#x276F;", string(toolIcon("bash")))
	assert.NotEqual(t, string(toolIcon("Bash")), string(toolIcon("WebSearch")))
	assert.NotEmpty(t, string(toolIcon("SomethingCustom")))
}

func TestFormatToolInput(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		assert.Equal(t, "", formatToolInput(nil))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", formatToolInput(map[string]any{}))
	})

	t.Run("simple input", func(t *testing.T) {
		out := formatToolInput(map[string]any{"key": "value"})
		assert.Contains(t, out, `"key": "value"`)
	})

	t.Run("nested input", func(t *testing.T) {
		out := formatToolInput(map[string]any{
			"outer": map[string]any{"inner": float64(42)},
		})
		assert.Contains(t, out, `"outer"`)
		assert.Contains(t, out, `"inner": 42`)
	})
}
