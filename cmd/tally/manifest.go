package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/tally/core"
	"github.com/sonnes/tally/manifest"
	"github.com/urfave/cli/v3"
)

func manifestCmd() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Manage the run index",
		Commands: []*cli.Command{
			manifestUpsertCmd(),
			manifestRepairCmd(),
		},
	}
}

func manifestUpsertCmd() *cli.Command {
	return &cli.Command{
		Name:  "upsert",
		Usage: "Add or update one result file in the run index",
		Description: `Reads a parsed result JSON file and upserts its entry into the run index
next to it. Useful after copying a result file into the directory by hand.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Directory containing the run index",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Result JSON file inside the directory",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")
			name := filepath.Base(cmd.String("file"))

			res, err := readResult(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read result: %w", err)
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
			return nil
		},
	}
}

func manifestRepairCmd() *cli.Command {
	return &cli.Command{
		Name:  "repair",
		Usage: "Rebuild the run index by scanning the results directory",
		Description: `Scans the directory for result JSON files, re-reads each one, and
rebuilds the run index from scratch.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Directory containing parsed results",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")

			m, skipped, err := repairManifest(dir)
			if err != nil {
				return err
			}

			if err := m.WriteFile(filepath.Join(dir, manifest.Filename)); err != nil {
				return fmt.Errorf("write run index: %w", err)
			}

			fmt.Printf("Repaired run index: %d entries (%d skipped)\n", len(m.Entries), skipped)
			return nil
		},
	}
}

// repairManifest scans dir for result JSON files and rebuilds the index.
// Files that do not decode as run results are skipped. Returns the manifest,
// the count of skipped files, and any fatal error.
func repairManifest(dir string) (*manifest.Manifest, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read results directory: %w", err)
	}

	m := &manifest.Manifest{}
	skipped := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == manifest.Filename || filepath.Ext(name) != ".json" {
			continue
		}

		res, err := readResult(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skip %s: %v\n", name, err)
			skipped++
			continue
		}
		if res.SessionID == "" && len(res.Turns) == 0 {
			fmt.Fprintf(os.Stderr, "warning: skip %s: not a run result\n", name)
			skipped++
			continue
		}

		m.Upsert(core.NewRunEntry(res, name))
	}

	return m, skipped, nil
}
