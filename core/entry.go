package core

// RunEntry holds lightweight metadata for a single parsed run, used by the
// manifest file and report listings. It mirrors the fields of RunResult that
// an index needs, without carrying the full turn list.
type RunEntry struct {
	SessionID    string     `json:"session_id"`
	TaskName     string     `json:"task_name,omitempty"`
	ModeName     string     `json:"mode_name,omitempty"`
	ModelName    string     `json:"model_name,omitempty"`
	Repetition   int        `json:"repetition,omitempty"`
	Correct      bool       `json:"correct"`
	NumTurns     int        `json:"num_turns"`
	TotalCostUSD float64    `json:"total_cost_usd,omitempty"`
	Usage        *Usage     `json:"usage,omitempty"`
	DiffStats    *DiffStats `json:"diff_stats,omitempty"`
	ToolCalls    int        `json:"tool_calls"`
	Href         string     `json:"href"`
}

// NewRunEntry extracts metadata from a RunResult and pairs it with the given
// href (relative link to the full result file or rendered page).
func NewRunEntry(r *RunResult, href string) RunEntry {
	var usage *Usage
	if u := r.Usage(); u != (Usage{}) {
		usage = &u
	}
	return RunEntry{
		SessionID:    r.SessionID,
		TaskName:     r.TaskName,
		ModeName:     r.ModeName,
		ModelName:    r.ModelName,
		Repetition:   r.Repetition,
		Correct:      r.Correct,
		NumTurns:     r.NumTurns,
		TotalCostUSD: r.TotalCostUSD,
		Usage:        usage,
		DiffStats:    ComputeDiffStats(r),
		ToolCalls:    r.ToolCallTotal(),
		Href:         href,
	}
}
