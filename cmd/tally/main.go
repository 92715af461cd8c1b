package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "tally",
		Usage: "Turn captured agent benchmark logs into scored, shareable run reports",
		Description: `
  _        _ _
 | |_ __ _| | |_   _
 | __/ _' | | | | | |
 | || (_| | | | |_| |
  \__\__,_|_|_|\__, |
               |___/

 The scorekeeper of benchmark runs: parsed captures in, pass rates and costs out.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			parseCmd(),
			reportCmd(),
			manifestCmd(),
			serveCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
