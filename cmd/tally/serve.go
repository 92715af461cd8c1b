package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sonnes/tally/core"
	htmlrender "github.com/sonnes/tally/render/html"
	"github.com/sonnes/tally/report"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve parsed runs for browsing in a local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Directory containing parsed results and the run index",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, runs, err := loadRuns(cmd.String("dir"))
			if err != nil {
				return err
			}

			byID := make(map[string]*core.RunResult, len(runs))
			for _, res := range runs {
				byID[res.SessionID] = res
			}

			rep := report.Build(runs)

			renderer := htmlrender.New()
			renderer.RunHref = func(sessionID string) string {
				return "/run/" + sessionID
			}

			mux := http.NewServeMux()

			mux.HandleFunc("GET /", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := renderer.RenderReport(w, rep, m.Entries); err != nil {
					slog.Error("render report", "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})

			mux.HandleFunc("GET /run/{session}", func(w http.ResponseWriter, req *http.Request) {
				id := req.PathValue("session")
				res, ok := byID[id]
				if !ok {
					http.NotFound(w, req)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := renderer.Render(w, res); err != nil {
					slog.Error("render run", "session_id", id, "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})

			addr := fmt.Sprintf(":%d", cmd.Int("port"))
			slog.Info("serving", "addr", "http://localhost"+addr, "runs", len(runs))
			return http.ListenAndServe(addr, mux)
		},
	}
}
