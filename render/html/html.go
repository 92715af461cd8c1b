// Package html renders runs as standalone HTML pages styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/report"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders runs and reports to standalone HTML pages.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// RunHref, when non-nil, overrides the manifest entry links on report
	// pages. Used by the serve command to generate server-routed URLs
	// instead of static file links.
	RunHref func(sessionID string) string
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // allow raw HTML in markdown
		),
	)

	tmpl := template.Must(
		template.New("run.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the top-level template data passed to run.html.
type pageData struct {
	Title      string
	Run        *core.RunResult
	Graded     bool
	DiffStats  *core.DiffStats
	Usage      core.Usage
	Duration   string // wall-clock duration (e.g. "2m 30s")
	Turns      []turnData
	ResultHTML template.HTML
}

// turnData is the per-turn template data passed to run.html.
type turnData struct {
	ID      string // anchor ID (e.g. "turn-0")
	Number  int    // 1-based display index
	Context string // formatted context tokens, empty when zero
	Output  string // formatted output tokens, empty when zero
	Blocks  []template.HTML
}

// reportData is the template data passed to report.html.
type reportData struct {
	Report  *report.Report
	Entries []entryData
}

// entryData pairs a manifest entry with its resolved link.
type entryData struct {
	Entry core.RunEntry
	Href  string
}

// Render writes the run as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, res *core.RunResult) error {
	turns := make([]turnData, 0, len(res.Turns))
	for _, turn := range res.Turns {
		td := turnData{
			ID:     fmt.Sprintf("turn-%d", turn.Index),
			Number: turn.Index + 1,
		}
		if ctx := turn.ContextTokens(); ctx > 0 {
			td.Context = formatNumber(ctx)
		}
		if turn.OutputTokens > 0 {
			td.Output = formatNumber(turn.OutputTokens)
		}
		for _, tc := range turn.ToolCalls {
			block, err := r.renderToolCallBlock(tc)
			if err != nil {
				return fmt.Errorf("render tool call: %w", err)
			}
			td.Blocks = append(td.Blocks, block)
		}
		turns = append(turns, td)
	}

	var resultHTML template.HTML
	if res.ResultText != "" {
		rendered, err := r.renderResultText(res.ResultText)
		if err != nil {
			return fmt.Errorf("render result text: %w", err)
		}
		resultHTML = rendered
	}

	title := res.TaskName
	if title == "" && res.SessionID != "" {
		title = "Run " + res.SessionID
	}

	data := pageData{
		Title:      title,
		Run:        res,
		Graded:     res.TaskName != "",
		DiffStats:  core.ComputeDiffStats(res),
		Usage:      res.Usage(),
		Duration:   formatDurationMS(res.DurationMS),
		Turns:      turns,
		ResultHTML: resultHTML,
	}
	return r.tmpl.ExecuteTemplate(w, "run.html", data)
}

// RenderReport writes the aggregate report page to w: a comparison table over
// the report rows, then the given run entries as links.
func (r *Renderer) RenderReport(w io.Writer, rep *report.Report, entries []core.RunEntry) error {
	list := make([]entryData, 0, len(entries))
	for _, e := range entries {
		href := e.Href
		if r.RunHref != nil {
			href = r.RunHref(e.SessionID)
		}
		list = append(list, entryData{Entry: e, Href: href})
	}
	return r.tmpl.ExecuteTemplate(w, "report.html", reportData{Report: rep, Entries: list})
}
