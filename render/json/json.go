// Package json renders run results as JSON (serializes the normalized record as-is).
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/report"
)

// Renderer renders a run result to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// Render writes res as a single JSON document followed by a newline.
func (r *Renderer) Render(w io.Writer, res *core.RunResult) error {
	return r.encode(w, res)
}

// RenderReport writes an aggregate report as a single JSON document.
func (r *Renderer) RenderReport(w io.Writer, rep *report.Report) error {
	return r.encode(w, rep)
}

func (r *Renderer) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
