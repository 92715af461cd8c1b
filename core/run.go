// Package core defines the normalized run record: the common representation
// of an agent benchmark run that all parsers produce and all renderers and
// aggregators consume.
package core

// ToolCall is a single tool invocation made by the agent during a run.
type ToolCall struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	TurnIndex int            `json:"turn_index"` // index of the owning turn
}

// Turn is one assistant response cycle: the token usage it reported and the
// tool calls it made, in order of appearance.
type Turn struct {
	Index               int        `json:"index"`
	InputTokens         int        `json:"input_tokens"`
	OutputTokens        int        `json:"output_tokens"`
	CacheCreationTokens int        `json:"cache_creation_tokens"`
	CacheReadTokens     int        `json:"cache_read_tokens"`
	ToolCalls           []ToolCall `json:"tool_calls,omitempty"`
}

// ContextTokens returns the effective context size for this turn: fresh input
// plus everything read from or written to the prompt cache.
func (t Turn) ContextTokens() int {
	return t.InputTokens + t.CacheCreationTokens + t.CacheReadTokens
}

// RunResult is the normalized outcome of a single benchmark run.
//
// NumTurns is the run's own claim about its length, taken from the final
// summary event when the capture has one. It can disagree with len(Turns);
// both values are kept as reported.
//
// TaskName through CorrectnessReason are assigned by the caller after
// parsing. Parsers always leave them at zero values.
type RunResult struct {
	SessionID string `json:"session_id"`
	Turns     []Turn `json:"turns"`
	NumTurns  int    `json:"num_turns"`

	TotalCostUSD  float64 `json:"total_cost_usd"`
	DurationMS    int64   `json:"duration_ms"`
	DurationAPIMS int64   `json:"duration_api_ms"`

	TotalInputTokens         int `json:"total_input_tokens"`
	TotalOutputTokens        int `json:"total_output_tokens"`
	TotalCacheCreationTokens int `json:"total_cache_creation_tokens"`
	TotalCacheReadTokens     int `json:"total_cache_read_tokens"`

	ResultText string `json:"result_text"`

	TaskName          string `json:"task_name,omitempty"`
	ModeName          string `json:"mode_name,omitempty"`
	ModelName         string `json:"model_name,omitempty"`
	Repetition        int    `json:"repetition,omitempty"`
	Correct           bool   `json:"correct"`
	CorrectnessReason string `json:"correctness_reason,omitempty"`
}

// Usage holds token counters. Used both for per-run totals and for report
// aggregates across runs.
type Usage struct {
	InputTokens         int `json:"input_tokens,omitempty"`
	OutputTokens        int `json:"output_tokens,omitempty"`
	CacheReadTokens     int `json:"cache_read_tokens,omitempty"`
	CacheCreationTokens int `json:"cache_creation_tokens,omitempty"`
}

// Add accumulates the counts from other into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheReadTokens += other.CacheReadTokens
	u.CacheCreationTokens += other.CacheCreationTokens
}

// Usage bundles the run's stored token totals into a Usage value.
func (r *RunResult) Usage() Usage {
	return Usage{
		InputTokens:         r.TotalInputTokens,
		OutputTokens:        r.TotalOutputTokens,
		CacheReadTokens:     r.TotalCacheReadTokens,
		CacheCreationTokens: r.TotalCacheCreationTokens,
	}
}

// ToolCallCounts tallies tool invocations by name across all turns. A run
// with no turns or no tool calls yields an empty map.
func (r *RunResult) ToolCallCounts() map[string]int {
	counts := make(map[string]int)
	for _, turn := range r.Turns {
		for _, tc := range turn.ToolCalls {
			counts[tc.Name]++
		}
	}
	return counts
}

// ToolCallTotal returns the number of tool invocations across all turns.
func (r *RunResult) ToolCallTotal() int {
	n := 0
	for _, turn := range r.Turns {
		n += len(turn.ToolCalls)
	}
	return n
}
