// Package codex parses Codex exec captures (the newline-delimited JSON
// emitted by `codex exec --json`).
//
// Codex reports usage on turn.completed events rather than per assistant
// message, and never reports cache creation tokens. Totals are summed over
// all turn.completed events, so a trailing usage event without a matching
// turn.started still counts toward the run totals.
package codex

import (
	"encoding/json"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/parse"
	"github.com/sonnes/tally/pricing"
)

// Parser parses Codex exec captures. Model selects the pricing rates used
// for cost computation; unknown models fall back to the table's default.
type Parser struct {
	// Model is the model identifier the run was executed with.
	Model string
	// Pricing overrides the built-in pricing table. Nil means built-in.
	Pricing *pricing.Table
}

// Raw JSON deserialization types. These mirror the exec events on the wire.

type rawEvent struct {
	Type     string    `json:"type"`
	ThreadID string    `json:"thread_id"`
	Item     rawItem   `json:"item"`
	Usage    *rawUsage `json:"usage"`
}

type rawItem struct {
	Type      string         `json:"type"`
	ID        string         `json:"id"`
	Command   string         `json:"command"`
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	FilePath  string         `json:"file_path"`
	Text      string         `json:"text"`
}

type rawUsage struct {
	InputTokens       int `json:"input_tokens"`
	CachedInputTokens int `json:"cached_input_tokens"`
	OutputTokens      int `json:"output_tokens"`
}

// Parse converts a raw exec capture into a normalized RunResult, pricing
// token usage for the given model with the built-in table.
func Parse(raw, model string) (*core.RunResult, error) {
	p := &Parser{Model: model}
	return p.Parse(raw)
}

// Parse implements parse.Parser.
func (p *Parser) Parse(raw string) (*core.RunResult, error) {
	events, err := decodeEvents(raw)
	if err != nil {
		return nil, err
	}
	return p.buildResult(events), nil
}

// decodeEvents decodes every line up front, before any folding. A single
// undecodable line fails the whole capture.
func decodeEvents(raw string) ([]rawEvent, error) {
	lines := parse.SplitLines(raw)
	events := make([]rawEvent, 0, len(lines))
	for _, l := range lines {
		var ev rawEvent
		if err := json.Unmarshal([]byte(l.Text), &ev); err != nil {
			return nil, &parse.MalformedInputError{Line: l.N, Err: err}
		}
		events = append(events, ev)
	}
	return events, nil
}

// buildResult folds decoded events into a RunResult. Unknown event types are
// skipped.
func (p *Parser) buildResult(events []rawEvent) *core.RunResult {
	var (
		sessionID  string
		resultText string
		turnItems  [][]rawItem // items grouped by turn, in turn order
		usages     []rawUsage  // one entry per turn.completed event
	)

	for _, ev := range events {
		switch ev.Type {
		case "thread.started":
			sessionID = ev.ThreadID

		case "turn.started":
			turnItems = append(turnItems, nil)

		case "item.completed":
			// Items before the first turn.started have no turn to belong to
			// and are dropped, but an agent message still sets the result
			// text regardless.
			if n := len(turnItems); n > 0 {
				turnItems[n-1] = append(turnItems[n-1], ev.Item)
			}
			if ev.Item.Type == "agent_message" {
				resultText = ev.Item.Text
			}

		case "turn.completed":
			var usage rawUsage
			if ev.Usage != nil {
				usage = *ev.Usage
			}
			usages = append(usages, usage)
		}
	}

	turns := make([]core.Turn, 0, len(turnItems))
	for idx, items := range turnItems {
		var usage rawUsage
		if idx < len(usages) {
			usage = usages[idx]
		}
		turns = append(turns, buildTurn(idx, items, usage))
	}

	var totals rawUsage
	for _, u := range usages {
		totals.InputTokens += u.InputTokens
		totals.CachedInputTokens += u.CachedInputTokens
		totals.OutputTokens += u.OutputTokens
	}

	rates := p.rates()

	return &core.RunResult{
		SessionID:            sessionID,
		Turns:                turns,
		NumTurns:             len(usages),
		TotalCostUSD:         rates.Cost(totals.InputTokens, totals.CachedInputTokens, totals.OutputTokens),
		TotalInputTokens:     totals.InputTokens,
		TotalOutputTokens:    totals.OutputTokens,
		TotalCacheReadTokens: totals.CachedInputTokens,
		ResultText:           resultText,
	}
}

func (p *Parser) rates() pricing.Rates {
	table := p.Pricing
	if table == nil {
		table = pricing.Builtin()
	}
	return table.Lookup(p.Model)
}

// buildTurn maps one turn's items and usage to a Turn. Codex never reports
// cache creation tokens, so CacheCreationTokens stays zero.
func buildTurn(index int, items []rawItem, usage rawUsage) core.Turn {
	turn := core.Turn{
		Index:           index,
		InputTokens:     usage.InputTokens,
		OutputTokens:    usage.OutputTokens,
		CacheReadTokens: usage.CachedInputTokens,
	}
	for _, item := range items {
		if tc, ok := toolCall(item, index); ok {
			turn.ToolCalls = append(turn.ToolCalls, tc)
		}
	}
	return turn
}

// toolCall translates an item into a ToolCall under the same naming the
// stream format uses, so counts aggregate across agents. Items that are not
// tool invocations report ok=false.
func toolCall(item rawItem, turnIndex int) (core.ToolCall, bool) {
	tc := core.ToolCall{ToolUseID: item.ID, TurnIndex: turnIndex}

	switch item.Type {
	case "command_execution":
		tc.Name = "Bash"
		tc.Input = map[string]any{"command": item.Command}
	case "mcp_tool_call":
		tc.Name = item.Tool
		if tc.Name == "" {
			tc.Name = "unknown"
		}
		tc.Input = inputMap(item.Arguments)
	case "file_edit":
		tc.Name = "Edit"
		tc.Input = map[string]any{"file_path": item.FilePath}
	case "file_write":
		tc.Name = "Write"
		tc.Input = map[string]any{"file_path": item.FilePath}
	default:
		return core.ToolCall{}, false
	}

	return tc, true
}

// inputMap normalizes missing tool arguments to an empty map so downstream
// walks never see nil.
func inputMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
