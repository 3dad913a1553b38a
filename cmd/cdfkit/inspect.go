package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cdfkit/internal/logger"
	"github.com/samcharles93/cdfkit/internal/report"
	"github.com/samcharles93/cdfkit/pkg/cdf"
)

const parseFailure = "could not parse file, is this a valid CDF-1, 2, or 5 file?"

func inspectCmd() *cli.Command {
	var (
		format    string
		strict    bool
		maxValues int
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header of a CDF file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json, cdl)",
				Value:       "text",
				Destination: &format,
			},
			strictFlag(&strict),
			valuesFlag(&maxValues),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyOutputConfig(cmd, cfg, &maxValues, &strict)

			path, err := resolveInputPath(cmd.Args().First(), dataDir(cfg))
			if err != nil {
				return err
			}
			f, err := openCDF(path, strict)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			log.Debug("decoded header", "path", path, "version", f.Header.Version, "header_bytes", f.HeaderSize)

			r := report.BuildFile(filepath.Base(path), f, report.Options{MaxValues: maxValues})
			return render(os.Stdout, format, r)
		},
	}
}

// openCDF opens path and turns decode failures into the user-facing message.
func openCDF(path string, strict bool) (*cdf.File, error) {
	f, err := cdf.Open(path)
	if err != nil {
		return nil, describeOpenError(path, err)
	}
	if strict {
		if err := f.Header.Validate(); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return f, nil
}

func describeOpenError(path string, err error) error {
	var de *cdf.DecodeError
	if errors.As(err, &de) {
		return fmt.Errorf("%s\n%s: %w", parseFailure, path, err)
	}
	return err
}

func render(w io.Writer, format string, r *report.Report) error {
	switch format {
	case "", "text":
		return report.WriteText(w, r)
	case "cdl":
		return report.WriteCDL(w, r)
	case "json":
		out, err := report.JSON(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or cdl)", format)
	}
}
