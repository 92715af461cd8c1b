// Package render defines the interface for rendering normalized run results
// into various output formats.
package render

import (
	"io"

	"github.com/sonnes/tally/core"
)

// Renderer writes a run result to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, r *core.RunResult) error
}
