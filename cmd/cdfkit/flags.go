package main

import "github.com/urfave/cli/v3"

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config.yaml (default: user config dir)",
		Sources:     cli.EnvVars(envConfigFile),
		Destination: &configFile,
	}
}

func valuesFlag(dst *int) cli.Flag {
	return &cli.IntFlag{
		Name:        "values",
		Usage:       "max attribute values shown (0 = all, -1 = none)",
		Value:       16,
		Destination: dst,
	}
}

func strictFlag(dst *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "strict",
		Usage:       "reject headers with invalid dimension references",
		Destination: dst,
	}
}
