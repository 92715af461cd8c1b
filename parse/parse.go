// Package parse defines the interface for converting raw agent output
// captures into normalized run results.
package parse

import (
	"fmt"
	"strings"

	"github.com/sonnes/tally/core"
)

// Parser converts one agent's captured output into a RunResult.
type Parser interface {
	// Parse consumes the complete raw output of a single run.
	Parse(raw string) (*core.RunResult, error)
}

// MalformedInputError reports a line that could not be decoded as JSON.
// A single bad line fails the entire capture; there is no partial result.
type MalformedInputError struct {
	Line int // 1-based line number in the raw capture
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input on line %d: %v", e.Line, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Line is a single non-blank line of a capture paired with its original
// position, so decode errors can name the line in the source file.
type Line struct {
	N    int // 1-based
	Text string
}

// SplitLines splits a capture into trimmed, non-blank lines, preserving
// original line numbers.
func SplitLines(raw string) []Line {
	var lines []Line
	for i, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, Line{N: i + 1, Text: l})
	}
	return lines
}
