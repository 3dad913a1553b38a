package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cdfkit/internal/logger"
	"github.com/samcharles93/cdfkit/internal/report"
	"github.com/samcharles93/cdfkit/pkg/cdf"
	"github.com/samcharles93/cdfkit/pkg/cdf/cdfdata"
)

type dumpOutput struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Shape     []uint64 `json:"shape"`
	Values    any      `json:"values"`
	Truncated bool     `json:"truncated,omitempty"`
}

func dumpCmd() *cli.Command {
	var (
		varName string
		limit   int
		asJSON  bool
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the values of one variable",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "var",
				Aliases:     []string{"v"},
				Usage:       "variable name",
				Required:    true,
				Destination: &varName,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "max values printed (0 = all)",
				Destination: &limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON document instead of one value per line",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			path, err := resolveInputPath(cmd.Args().First(), dataDir(cfg))
			if err != nil {
				return err
			}
			f, err := openCDF(path, false)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			out, err := dumpVariable(f, varName, limit)
			if err != nil {
				return err
			}
			log.Debug("read variable", "path", path, "var", varName, "shape", out.Shape)
			if asJSON {
				b, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(os.Stdout, string(b))
				return err
			}
			return writeDump(os.Stdout, out)
		},
	}
}

func dumpVariable(f *cdf.File, name string, limit int) (*dumpOutput, error) {
	v, ok := f.Header.Variable(name)
	if !ok {
		return nil, fmt.Errorf("variable %q not found", name)
	}
	shape, err := cdfdata.Shape(f.Header, v)
	if err != nil {
		return nil, err
	}
	values, err := cdfdata.ReadVariable(f, v)
	if err != nil {
		return nil, err
	}
	values, truncated := report.Limit(values, limit)
	return &dumpOutput{
		Name:      v.Name,
		Type:      v.Type.String(),
		Shape:     shape,
		Values:    values,
		Truncated: truncated,
	}, nil
}

func writeDump(w io.Writer, out *dumpOutput) error {
	dims := make([]string, len(out.Shape))
	for i, n := range out.Shape {
		dims[i] = fmt.Sprint(n)
	}
	if _, err := fmt.Fprintf(w, "%s %s(%s)\n", out.Type, out.Name, strings.Join(dims, ", ")); err != nil {
		return err
	}

	var err error
	switch v := out.Values.(type) {
	case string:
		_, err = fmt.Fprintf(w, "%q\n", v)
	case []int8:
		err = writeLines(w, v)
	case []uint16:
		err = writeLines(w, v)
	case []int16:
		err = writeLines(w, v)
	case []int32:
		err = writeLines(w, v)
	case []uint32:
		err = writeLines(w, v)
	case []int64:
		err = writeLines(w, v)
	case []uint64:
		err = writeLines(w, v)
	case []float32:
		err = writeLines(w, v)
	case []float64:
		err = writeLines(w, v)
	case []any:
		err = writeLines(w, v)
	default:
		_, err = fmt.Fprintln(w, v)
	}
	if err != nil {
		return err
	}
	if out.Truncated {
		_, err = fmt.Fprintln(w, "...")
	}
	return err
}

func writeLines[T any](w io.Writer, values []T) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
