package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/cdfkit/internal/report"
	"github.com/samcharles93/cdfkit/internal/scan"
	"github.com/samcharles93/cdfkit/pkg/cdf"
)

// writeSample writes a CDF-1 file with a double variable v(n) = 0.5, 1.5, 2.5, 3.5
// and returns its path.
func writeSample(t *testing.T) string {
	t.Helper()
	var b []byte
	u32 := func(v uint32) { b = binary.BigEndian.AppendUint32(b, v) }
	b = append(b, "CDF\x01"...)
	u32(0)
	u32(0x0a)
	u32(1)
	u32(1)
	b = append(b, 'n', 0, 0, 0)
	u32(4)
	u32(0)
	u32(0)
	u32(0x0b)
	u32(1)
	u32(1)
	b = append(b, 'v', 0, 0, 0)
	u32(1)
	u32(0)
	u32(0)
	u32(0)
	u32(6) // double
	u32(32)
	u32(uint32(len(b) + 4))
	for _, f := range []float64{0.5, 1.5, 2.5, 3.5} {
		b = binary.BigEndian.AppendUint64(b, math.Float64bits(f))
	}

	path := filepath.Join(t.TempDir(), "sample.nc")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestOpenCDF(t *testing.T) {
	f, err := openCDF(writeSample(t), true)
	if err != nil {
		t.Fatalf("openCDF returned error: %v", err)
	}
	defer func() { _ = f.Close() }()
	if f.Header.Version != cdf.CDF1 || len(f.Header.Variables) != 1 {
		t.Fatalf("unexpected header: %+v", f.Header)
	}
}

func TestOpenCDFParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nc")
	if err := os.WriteFile(path, []byte("\x89HDF\r\n\x1a\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := openCDF(path, false)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.HasPrefix(err.Error(), parseFailure) {
		t.Fatalf("unexpected message: %v", err)
	}
	if !errors.Is(err, cdf.ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic in chain: %v", err)
	}

	_, err = openCDF(filepath.Join(t.TempDir(), "missing.nc"), false)
	if err == nil || strings.HasPrefix(err.Error(), parseFailure) {
		t.Fatalf("missing files should surface the OS error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	f, err := openCDF(writeSample(t), false)
	if err != nil {
		t.Fatalf("openCDF: %v", err)
	}
	defer func() { _ = f.Close() }()
	r := report.BuildFile("sample.nc", f, report.Options{})

	for _, format := range []string{"text", "json", "cdl"} {
		var buf bytes.Buffer
		if err := render(&buf, format, r); err != nil {
			t.Fatalf("render %s: %v", format, err)
		}
		if !strings.Contains(buf.String(), "v") {
			t.Fatalf("render %s: variable missing from %q", format, buf.String())
		}
	}
	var buf bytes.Buffer
	if err := render(&buf, "xml", r); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestDumpVariable(t *testing.T) {
	f, err := openCDF(writeSample(t), false)
	if err != nil {
		t.Fatalf("openCDF: %v", err)
	}
	defer func() { _ = f.Close() }()

	out, err := dumpVariable(f, "v", 3)
	if err != nil {
		t.Fatalf("dumpVariable returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := writeDump(&buf, out); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	want := "double v(4)\n0.5\n1.5\n2.5\n...\n"
	if buf.String() != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", buf.String(), want)
	}

	if _, err := dumpVariable(f, "missing", 0); err == nil {
		t.Fatalf("expected error for unknown variable")
	}
}

func TestWriteScan(t *testing.T) {
	results := []scan.Result{
		{Path: "a.nc", Report: &report.Report{Version: "CDF-2", Streaming: true}},
		{Path: "b.nc", Err: cdf.ErrBadMagic},
	}
	var buf bytes.Buffer
	failed, err := writeScan(&buf, results)
	if err != nil {
		t.Fatalf("writeScan: %v", err)
	}
	if failed != 1 {
		t.Fatalf("expected 1 failure, got %d", failed)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "records=streaming") || !strings.Contains(lines[1], "error:") {
		t.Fatalf("unexpected scan output: %q", buf.String())
	}
}
