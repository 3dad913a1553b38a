package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigFile = "CDFKIT_CONFIG"

// Config represents the cdfkit configuration file (~/.config/cdfkit/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	DataDir string `yaml:"data_dir"`

	// Output
	MaxValues *int   `yaml:"max_values"`
	Strict    *bool  `yaml:"strict"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Scan
	Workers *int `yaml:"workers"`

	// Server
	ServerAddress  string `yaml:"server_address"`
	MaxUploadBytes *int64 `yaml:"max_upload_bytes"`
	MaxFiles       *int   `yaml:"max_files"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cdfkit", "config.yaml")
}

// loadConfigFile reads path. A missing file yields a zero Config.
func loadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyOutputConfig applies config defaults shared by inspect, scan and serve.
func applyOutputConfig(c *cli.Command, cfg Config, maxValues *int, strict *bool) {
	if cfg.MaxValues != nil && maxValues != nil && !c.IsSet("values") {
		*maxValues = *cfg.MaxValues
	}
	if cfg.Strict != nil && strict != nil && !c.IsSet("strict") {
		*strict = *cfg.Strict
	}
}

func applyScanConfig(c *cli.Command, cfg Config, workers *int) {
	if cfg.Workers != nil && !c.IsSet("workers") {
		*workers = *cfg.Workers
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64, maxFiles *int) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadBytes != nil && !c.IsSet("max-upload") {
		*maxUpload = *cfg.MaxUploadBytes
	}
	if cfg.MaxFiles != nil && !c.IsSet("max-files") {
		*maxFiles = *cfg.MaxFiles
	}
}
