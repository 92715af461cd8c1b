package main

import (
	"context"
	"fmt"
	"os"

	htmlrender "github.com/sonnes/tally/render/html"
	jsonrender "github.com/sonnes/tally/render/json"
	"github.com/sonnes/tally/render/terminal"
	"github.com/sonnes/tally/report"
	"github.com/urfave/cli/v3"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Aggregate parsed runs into a pass-rate and cost report",
		Description: `Loads every run the run index references, groups them by task, mode,
and model, and renders pass rates, mean turns, and mean costs per group.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Directory containing parsed results and the run index",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, runs, err := loadRuns(cmd.String("dir"))
			if err != nil {
				return err
			}

			rep := report.Build(runs)

			switch format := cmd.String("o"); format {
			case "terminal":
				return terminal.New().RenderReport(os.Stdout, rep)
			case "json":
				jr := &jsonrender.Renderer{Indent: true}
				return jr.RenderReport(os.Stdout, rep)
			case "html":
				return htmlrender.New().RenderReport(os.Stdout, rep, m.Entries)
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}
}
