// Package pricing maps model identifiers to per-token billing rates, used to
// compute run costs for agents that do not report cost themselves.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rates holds USD prices per one million tokens.
type Rates struct {
	Input  float64 `json:"input" yaml:"input"`
	Cached float64 `json:"cached" yaml:"cached"`
	Output float64 `json:"output" yaml:"output"`
}

// Cost computes the USD cost of the given token counts.
func (r Rates) Cost(input, cached, output int) float64 {
	return float64(input)*r.Input/1_000_000 +
		float64(cached)*r.Cached/1_000_000 +
		float64(output)*r.Output/1_000_000
}

// Table maps model identifiers to rates, with a named default entry for
// unknown models.
type Table struct {
	Default string           `yaml:"default"`
	Models  map[string]Rates `yaml:"models"`
}

// Builtin returns the built-in pricing table. Rates are approximate.
func Builtin() *Table {
	return &Table{
		Default: "gpt-5-codex",
		Models: map[string]Rates{
			"gpt-5-codex": {Input: 2.00, Cached: 0.50, Output: 8.00},
			"o3":          {Input: 2.00, Cached: 0.50, Output: 8.00},
		},
	}
}

// Lookup returns the rates for model. Unknown models fall back to the
// table's default entry; pricing never fails a parse.
func (t *Table) Lookup(model string) Rates {
	if r, ok := t.Models[model]; ok {
		return r
	}
	return t.Models[t.Default]
}

// LoadFile reads a YAML pricing file and merges it over the built-in table.
// File entries win on conflict; the default model is replaced when the file
// names one.
//
//	default: gpt-5-codex
//	models:
//	  gpt-5-codex:
//	    input: 2.00
//	    cached: 0.50
//	    output: 8.00
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}

	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse pricing file: %w", err)
	}

	t := Builtin()
	for model, rates := range override.Models {
		t.Models[model] = rates
	}
	if override.Default != "" {
		if _, ok := t.Models[override.Default]; !ok {
			return nil, fmt.Errorf("pricing default %q has no models entry", override.Default)
		}
		t.Default = override.Default
	}

	return t, nil
}
