// Package claude parses Claude Code stream captures (the newline-delimited
// JSON emitted by `claude -p --output-format stream-json --verbose`).
package claude

import (
	"encoding/json"
	"strings"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/parse"
)

// Parser parses stream captures. The zero value is ready to use.
type Parser struct{}

// Raw JSON deserialization types. These mirror the stream events on the wire.

type rawEvent struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id"`
	Message   rawMessage `json:"message"`

	// Summary fields, set on "result" events only. NumTurns is a pointer so
	// an absent key can be told apart from an explicit zero.
	NumTurns      *int      `json:"num_turns"`
	TotalCostUSD  float64   `json:"total_cost_usd"`
	DurationMS    int64     `json:"duration_ms"`
	DurationAPIMS int64     `json:"duration_api_ms"`
	Usage         *rawUsage `json:"usage"`
}

type rawMessage struct {
	Content []rawContentBlock `json:"content"`
	Usage   rawUsage          `json:"usage"`
}

type rawUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

type rawContentBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// Parse converts a raw stream capture into a normalized RunResult.
func Parse(raw string) (*core.RunResult, error) {
	events, err := decodeEvents(raw)
	if err != nil {
		return nil, err
	}
	return buildResult(events), nil
}

// Parse implements parse.Parser.
func (p *Parser) Parse(raw string) (*core.RunResult, error) {
	return Parse(raw)
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
func buildResult(events []rawEvent) *core.RunResult {
	var (
		sessionID  string
		turns      []core.Turn
		resultText string
		summary    *rawEvent
	)

	for i := range events {
		ev := &events[i]
		switch ev.Type {
		case "system":
			sessionID = ev.SessionID

		case "assistant":
			turn, texts := buildTurn(len(turns), ev.Message)
			turns = append(turns, turn)
			// A turn with no text blocks leaves the running text untouched;
			// any text blocks, even empty ones, supersede it.
			if len(texts) > 0 {
				resultText = strings.Join(texts, "\n")
			}

		case "result":
			summary = ev
		}
	}

	r := &core.RunResult{
		SessionID:  sessionID,
		Turns:      turns,
		NumTurns:   len(turns),
		ResultText: resultText,
	}

	if summary != nil {
		if summary.NumTurns != nil {
			r.NumTurns = *summary.NumTurns
		}
		r.TotalCostUSD = summary.TotalCostUSD
		r.DurationMS = summary.DurationMS
		r.DurationAPIMS = summary.DurationAPIMS
		if summary.Usage != nil {
			r.TotalInputTokens = summary.Usage.InputTokens
			r.TotalOutputTokens = summary.Usage.OutputTokens
			r.TotalCacheCreationTokens = summary.Usage.CacheCreationInputTokens
			r.TotalCacheReadTokens = summary.Usage.CacheReadInputTokens
		}
	}

	return r
}

// buildTurn maps one assistant event to a Turn, collecting its tool calls
// and returning any text block contents in order.
func buildTurn(index int, msg rawMessage) (core.Turn, []string) {
	turn := core.Turn{
		Index:               index,
		InputTokens:         msg.Usage.InputTokens,
		OutputTokens:        msg.Usage.OutputTokens,
		CacheCreationTokens: msg.Usage.CacheCreationInputTokens,
		CacheReadTokens:     msg.Usage.CacheReadInputTokens,
	}

	var texts []string
	for _, b := range msg.Content {
		switch b.Type {
		case "tool_use":
			turn.ToolCalls = append(turn.ToolCalls, core.ToolCall{
				Name:      b.Name,
				Input:     inputMap(b.Input),
				ToolUseID: b.ID,
				TurnIndex: index,
			})
		case "text":
			texts = append(texts, b.Text)
		}
	}

	return turn, texts
}

// inputMap normalizes a missing tool input to an empty map so downstream
// walks never see nil.
func inputMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
