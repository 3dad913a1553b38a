package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cdfkit/internal/api"
	"github.com/samcharles93/cdfkit/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxUpload   int64
		maxFiles    int
		maxValues   int
		strict      bool
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the header decoding REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-upload",
				Usage:       "max upload size in bytes",
				Value:       api.DefaultMaxUploadBytes,
				Destination: &maxUpload,
			},
			&cli.IntFlag{
				Name:        "max-files",
				Usage:       "uploads kept in memory before the oldest is evicted",
				Value:       api.DefaultMaxFiles,
				Destination: &maxFiles,
			},
			valuesFlag(&maxValues),
			strictFlag(&strict),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyOutputConfig(cmd, cfg, &maxValues, &strict)
			applyServeConfig(cmd, cfg, &addr, &maxUpload, &maxFiles)

			server := api.NewServer(api.NewFileStore(maxFiles), api.Options{
				MaxUploadBytes: maxUpload,
				MaxValues:      maxValues,
				Strict:         strict,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_upload", maxUpload, "max_files", maxFiles)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
