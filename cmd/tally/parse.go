package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sonnes/tally/compact"
	"github.com/sonnes/tally/core"
	"github.com/urfave/cli/v3"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Parse a captured agent log into a normalized run result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "agent",
				Usage:    "Agent capture format (claude, codex)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to the capture file (defaults to stdin)",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model identifier, used for codex pricing and stamped on the result",
			},
			&cli.StringFlag{
				Name:  "pricing",
				Usage: "YAML pricing file merged over the built-in table",
			},
			&cli.StringFlag{
				Name:  "task",
				Usage: "Benchmark task name",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Benchmark mode name (e.g. agentic, oneshot)",
			},
			&cli.IntFlag{
				Name:  "rep",
				Usage: "Repetition number within the task/mode/model cell",
			},
			&cli.BoolFlag{
				Name:  "correct",
				Usage: "Mark the run as having passed its task check",
			},
			&cli.StringFlag{
				Name:  "reason",
				Usage: "Verifier's explanation for the correctness verdict",
			},
			&cli.BoolFlag{
				Name:  "no-redact",
				Usage: "Disable redaction of secrets and PII",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
			},
			&cli.IntFlag{
				Name:  "compact",
				Usage: "Summarize verbose tool inputs; a value N also caps result text at N lines",
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Directory to write the result JSON and update the run index",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp()

			p, err := a.parser(cmd)
			if err != nil {
				return err
			}

			raw, err := readCapture(cmd)
			if err != nil {
				return err
			}

			res, err := p.Parse(raw)
			if err != nil {
				return err
			}

			res.TaskName = cmd.String("task")
			res.ModeName = cmd.String("mode")
			res.ModelName = cmd.String("model")
			res.Repetition = int(cmd.Int("rep"))
			res.Correct = cmd.Bool("correct")
			res.CorrectnessReason = cmd.String("reason")

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			if redactor != nil {
				if err := core.Chain(res, redactor); err != nil {
					return fmt.Errorf("redact: %w", err)
				}
			}

			// --out captures the full redacted result; compaction applies only
			// to direct rendering, so stored runs keep their tool inputs.
			if dir := cmd.String("out"); dir != "" {
				return writeResult(dir, res)
			}

			if cmd.IsSet("compact") {
				compactor := compact.New(compact.Config{
					MaxResultLines: int(cmd.Int("compact")),
				})
				if err := core.Chain(res, compactor); err != nil {
					return fmt.Errorf("compact: %w", err)
				}
			}

			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}
			if err := rnd.Render(os.Stdout, res); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
