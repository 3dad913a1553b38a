package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cdfkit/internal/version"
)

// versionOutput adds the runtime platform to the build info.
type versionOutput struct {
	version.Info
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Formats  []string `json:"formats"`
}

func versionCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON document",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeVersion(os.Stdout, newVersionOutput(version.Resolve()), asJSON)
		},
	}
}

func newVersionOutput(info version.Info) versionOutput {
	return versionOutput{
		Info:     info,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Formats:  []string{"CDF-1", "CDF-2", "CDF-5"},
	}
}

func writeVersion(w io.Writer, out versionOutput, asJSON bool) error {
	if asJSON {
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	p := &linePrinter{w: w}
	p.printf("cdfkit %s\n", out.Version)
	if out.Commit != "" {
		p.printf("commit:   %s\n", out.Commit)
	}
	if out.BuildTime != "" {
		p.printf("built:    %s\n", out.BuildTime)
	}
	p.printf("go:       %s %s\n", out.Go, out.Platform)
	p.printf("formats:  %s, %s, %s\n", out.Formats[0], out.Formats[1], out.Formats[2])
	return p.err
}

// linePrinter keeps the first write error.
type linePrinter struct {
	w   io.Writer
	err error
}

func (p *linePrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
