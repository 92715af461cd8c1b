package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	table := Builtin()

	tests := []struct {
		name  string
		model string
		want  Rates
	}{
		{"exact match", "gpt-5-codex", Rates{Input: 2.00, Cached: 0.50, Output: 8.00}},
		{"o3", "o3", Rates{Input: 2.00, Cached: 0.50, Output: 8.00}},
		{"unknown falls back to default", "gpt-99-experimental", Rates{Input: 2.00, Cached: 0.50, Output: 8.00}},
		{"empty falls back to default", "", Rates{Input: 2.00, Cached: 0.50, Output: 8.00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Lookup(tt.model))
		})
	}
}

func TestCost(t *testing.T) {
	r := Rates{Input: 2.00, Cached: 0.50, Output: 8.00}

	tests := []struct {
		name                  string
		input, cached, output int
		want                  float64
	}{
		{"zero usage", 0, 0, 0, 0},
		{"input only", 1_000_000, 0, 0, 2.00},
		{"cached only", 0, 2_000_000, 0, 1.00},
		{"output only", 0, 0, 500_000, 4.00},
		{"mixed", 1_000_000, 2_000_000, 500_000, 7.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Cost(tt.input, tt.cached, tt.output), 1e-9)
		})
	}
}

func writePricingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileMerge(t *testing.T) {
	path := writePricingFile(t, `
models:
  gpt-5-codex:
    input: 3.00
    cached: 0.75
    output: 12.00
  my-local-model:
    input: 0.10
    cached: 0.05
    output: 0.40
`)

	table, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Rates{Input: 3.00, Cached: 0.75, Output: 12.00}, table.Lookup("gpt-5-codex"), "file entry wins")
	assert.Equal(t, Rates{Input: 0.10, Cached: 0.05, Output: 0.40}, table.Lookup("my-local-model"), "new entry added")
	assert.Equal(t, Rates{Input: 2.00, Cached: 0.50, Output: 8.00}, table.Lookup("o3"), "built-in entry kept")
	assert.Equal(t, "gpt-5-codex", table.Default)
}

func TestLoadFileReplacesDefault(t *testing.T) {
	path := writePricingFile(t, `
default: o3
models: {}
`)

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "o3", table.Default)
}

func TestLoadFileUnknownDefault(t *testing.T) {
	path := writePricingFile(t, `
default: no-such-model
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-model")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := writePricingFile(t, "models: [not a map")
	_, err := LoadFile(path)
	assert.Error(t, err)
}
