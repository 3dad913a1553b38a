package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cdfkit/internal/logger"
	"github.com/samcharles93/cdfkit/internal/scan"
)

func scanCmd() *cli.Command {
	var (
		workers   int
		recursive bool
		strict    bool
	)

	return &cli.Command{
		Name:      "scan",
		Usage:     "Decode every .nc/.cdf file in a directory",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"j"},
				Usage:       "concurrent decoders (0 = GOMAXPROCS)",
				Destination: &workers,
			},
			&cli.BoolFlag{
				Name:        "recursive",
				Aliases:     []string{"r"},
				Usage:       "descend into subdirectories",
				Destination: &recursive,
			},
			strictFlag(&strict),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyOutputConfig(cmd, cfg, nil, &strict)
			applyScanConfig(cmd, cfg, &workers)

			dir := resolveScanDir(cmd.Args().First(), dataDir(cfg))
			paths, err := scan.Discover(dir, recursive)
			if err != nil {
				return err
			}
			log.Info("scanning", "dir", dir, "files", len(paths), "workers", scan.WorkersFor(workers, len(paths)))

			results := scan.Run(ctx, paths, scan.Options{Workers: workers, Strict: strict, MaxValues: -1})
			failed, err := writeScan(os.Stdout, results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be decoded", failed, len(results))
			}
			return nil
		},
	}
}

// writeScan prints one line per result and returns the number of failures.
func writeScan(w io.Writer, results []scan.Result) (int, error) {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		if _, err := fmt.Fprintln(w, r.Summary()); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
