package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/manifest"
	"github.com/sonnes/tally/parse"
	"github.com/sonnes/tally/parse/claude"
	"github.com/sonnes/tally/parse/codex"
	"github.com/sonnes/tally/pricing"
	"github.com/sonnes/tally/redact"
	"github.com/sonnes/tally/render"
	htmlrender "github.com/sonnes/tally/render/html"
	jsonrender "github.com/sonnes/tally/render/json"
	"github.com/sonnes/tally/render/terminal"
	"github.com/urfave/cli/v3"
)

// app holds parser and renderer registries used by CLI commands.
type app struct {
	parsers   map[string]func(model string, table *pricing.Table) parse.Parser
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		parsers: map[string]func(string, *pricing.Table) parse.Parser{
			"claude": func(string, *pricing.Table) parse.Parser {
				return &claude.Parser{}
			},
			"codex": func(model string, table *pricing.Table) parse.Parser {
				return &codex.Parser{Model: model, Pricing: table}
			},
		},
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return &jsonrender.Renderer{Indent: true} },
			"html":     func() render.Renderer { return htmlrender.New() },
		},
	}
}

// parser builds the capture parser selected by --agent, with the pricing
// table from --pricing (codex only; claude captures carry their own cost).
func (a *app) parser(cmd *cli.Command) (parse.Parser, error) {
	name := cmd.String("agent")
	fn, ok := a.parsers[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q", name)
	}

	table := pricing.Builtin()
	if path := cmd.String("pricing"); path != "" {
		t, err := pricing.LoadFile(path)
		if err != nil {
			return nil, err
		}
		table = t
	}

	return fn(cmd.String("model"), table), nil
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// readCapture returns the raw capture from --file, or stdin when the flag is
// unset so parse can sit at the end of a pipe.
func readCapture(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read capture: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// newRedactor builds a Redactor from CLI flags. Returns nil when --no-redact is set.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	if cmd.Bool("no-redact") {
		return nil, nil
	}

	cfg := redact.Config{}
	rules := cmd.StringSlice("redact")

	if len(rules) == 0 {
		cfg.Secrets = true
		cfg.PII = true
	} else {
		for _, r := range rules {
			switch r {
			case "secrets":
				cfg.Secrets = true
			case "pii":
				cfg.PII = true
			default:
				return nil, fmt.Errorf("unknown redaction rule %q", r)
			}
		}
	}

	return redact.New(cfg), nil
}

// resultFilename builds the canonical result file name from the run's
// benchmark metadata, e.g. "fix-parser-agentic-gpt-5-codex-1.json". Runs
// without metadata fall back to the session ID.
func resultFilename(r *core.RunResult) string {
	var parts []string
	for _, p := range []string{r.TaskName, r.ModeName, r.ModelName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if r.Repetition > 0 {
		parts = append(parts, strconv.Itoa(r.Repetition))
	}

	if len(parts) == 0 {
		if r.SessionID != "" {
			return r.SessionID + ".json"
		}
		return "run.json"
	}
	return strings.Join(parts, "-") + ".json"
}

// writeResult writes the result JSON under dir and upserts the run index.
func writeResult(dir string, res *core.RunResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	name := resultFilename(res)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	jr := &jsonrender.Renderer{Indent: true}
	if err := jr.Render(f, res); err != nil {
		f.Close()
		return fmt.Errorf("write result: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	indexPath := filepath.Join(dir, manifest.Filename)
	m, err := manifest.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("read run index: %w", err)
	}
	m.Upsert(core.NewRunEntry(res, name))
	if err := m.WriteFile(indexPath); err != nil {
		return fmt.Errorf("write run index: %w", err)
	}

	log.Debug("wrote result", "path", path)
	return nil
}

// loadRuns reads every run the index under dir references. Entries whose
// result file is missing or unreadable are skipped with a warning so one bad
// file does not hide the rest.
func loadRuns(dir string) (*manifest.Manifest, []*core.RunResult, error) {
	m, err := manifest.ReadFile(filepath.Join(dir, manifest.Filename))
	if err != nil {
		return nil, nil, fmt.Errorf("read run index: %w", err)
	}

	runs := make([]*core.RunResult, 0, len(m.Entries))
	for _, entry := range m.Entries {
		res, err := readResult(filepath.Join(dir, entry.Href))
		if err != nil {
			log.Warn("skip run", "href", entry.Href, "error", err)
			continue
		}
		runs = append(runs, res)
	}
	return m, runs, nil
}

// readResult reads one parsed result JSON file.
func readResult(path string) (*core.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var res core.RunResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &res, nil
}
