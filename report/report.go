// Package report aggregates parsed runs into per-configuration summary rows
// for cross-model and cross-mode comparison.
package report

import (
	"sort"

	"github.com/sonnes/tally/core"
)

// Key identifies one benchmark configuration: a task attempted in a given
// mode with a given model.
type Key struct {
	TaskName  string `json:"task_name"`
	ModeName  string `json:"mode_name"`
	ModelName string `json:"model_name"`
}

// Row aggregates all runs that share one Key. Means are over the runs in
// the group; Usage and ToolCalls are group-wide sums.
type Row struct {
	Key
	Runs           int            `json:"runs"`
	Passed         int            `json:"passed"`
	PassRate       float64        `json:"pass_rate"`
	MeanTurns      float64        `json:"mean_turns"`
	MeanCostUSD    float64        `json:"mean_cost_usd"`
	MeanDurationMS float64        `json:"mean_duration_ms"`
	Usage          core.Usage     `json:"usage"`
	ToolCalls      map[string]int `json:"tool_calls"`
}

// Totals summarizes the whole report regardless of grouping.
type Totals struct {
	Runs         int        `json:"runs"`
	Passed       int        `json:"passed"`
	TotalCostUSD float64    `json:"total_cost_usd"`
	Usage        core.Usage `json:"usage"`
}

// Report is the aggregate view over a set of parsed runs.
type Report struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

// Build groups runs by (task, mode, model) and computes per-group stats.
// Mean turns counts the turns observed in the capture, not the run's own
// NumTurns claim. Rows come back sorted by task, then mode, then model.
func Build(runs []*core.RunResult) *Report {
	type accum struct {
		runs       int
		passed     int
		turns      int
		cost       float64
		durationMS int64
		usage      core.Usage
		toolCalls  map[string]int
	}

	groups := make(map[Key]*accum)
	report := &Report{Rows: []Row{}}

	for _, r := range runs {
		key := Key{TaskName: r.TaskName, ModeName: r.ModeName, ModelName: r.ModelName}
		a, ok := groups[key]
		if !ok {
			a = &accum{toolCalls: make(map[string]int)}
			groups[key] = a
		}
		a.runs++
		if r.Correct {
			a.passed++
		}
		a.turns += len(r.Turns)
		a.cost += r.TotalCostUSD
		a.durationMS += r.DurationMS
		a.usage.Add(r.Usage())
		for name, n := range r.ToolCallCounts() {
			a.toolCalls[name] += n
		}

		report.Totals.Runs++
		if r.Correct {
			report.Totals.Passed++
		}
		report.Totals.TotalCostUSD += r.TotalCostUSD
		report.Totals.Usage.Add(r.Usage())
	}

	for key, a := range groups {
		n := float64(a.runs)
		report.Rows = append(report.Rows, Row{
			Key:            key,
			Runs:           a.runs,
			Passed:         a.passed,
			PassRate:       float64(a.passed) / n,
			MeanTurns:      float64(a.turns) / n,
			MeanCostUSD:    a.cost / n,
			MeanDurationMS: float64(a.durationMS) / n,
			Usage:          a.usage,
			ToolCalls:      a.toolCalls,
		})
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		ri, rj := report.Rows[i], report.Rows[j]
		if ri.TaskName != rj.TaskName {
			return ri.TaskName < rj.TaskName
		}
		if ri.ModeName != rj.ModeName {
			return ri.ModeName < rj.ModeName
		}
		return ri.ModelName < rj.ModelName
	})

	return report
}
