package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const envDataDir = "CDFKIT_DATA_DIR"

// dataDir returns the directory relative file arguments fall back to.
func dataDir(cfg Config) string {
	if dir := strings.TrimSpace(os.Getenv(envDataDir)); dir != "" {
		return dir
	}
	return strings.TrimSpace(cfg.DataDir)
}

// resolveInputPath returns arg as given when it exists or is absolute,
// otherwise the same name under dir when that exists.
func resolveInputPath(arg, dir string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("a file argument is required")
	}
	path := filepath.Clean(arg)
	if filepath.IsAbs(path) || dir == "" {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	candidate := filepath.Join(dir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return path, nil
}

// resolveScanDir picks the scan root: the argument, then the data dir, then ".".
func resolveScanDir(arg, dir string) string {
	if arg = strings.TrimSpace(arg); arg != "" {
		return filepath.Clean(arg)
	}
	if dir != "" {
		return filepath.Clean(dir)
	}
	return "."
}
