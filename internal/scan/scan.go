// Package scan decodes many CDF files concurrently with a bounded pool of
// workers.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/samcharles93/cdfkit/internal/report"
	"github.com/samcharles93/cdfkit/pkg/cdf"
)

// Extensions lists the file suffixes Discover picks up.
var Extensions = []string{".nc", ".cdf"}

type Options struct {
	Workers   int
	Strict    bool
	MaxValues int
}

type Result struct {
	Path   string
	Report *report.Report
	Err    error
}

// Discover lists CDF candidates under dir in lexical order.
func Discover(dir string, recursive bool) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("scan directory is empty")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func hasExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// WorkersFor picks a pool size for n files.
func WorkersFor(requested, n int) int {
	workers := requested
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n > 0 && workers > n {
		workers = n
	}
	if workers < 1 {
		return 1
	}
	return workers
}

// Run decodes every path and returns one Result per path, in input order.
// Paths not started before ctx is cancelled report ctx.Err().
func Run(ctx context.Context, paths []string, opts Options) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}
	workers := WorkersFor(opts.Workers, len(paths))
	tasks := make(chan int, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				results[idx] = decodeOne(paths[idx], opts)
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- next:
		}
	}
	close(tasks)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		results[i] = Result{Path: paths[i], Err: ctx.Err()}
	}
	return results
}

func decodeOne(path string, opts Options) Result {
	res := Result{Path: path}
	f, err := cdf.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer func() { _ = f.Close() }()

	if opts.Strict {
		if err := f.Header.Validate(); err != nil {
			res.Err = err
			return res
		}
	}
	res.Report = report.BuildFile(filepath.Base(path), f, report.Options{MaxValues: opts.MaxValues})
	return res
}

// Summary is the one-line description printed for r.
func (r Result) Summary() string {
	if r.Err != nil {
		return fmt.Sprintf("%s\terror: %v", r.Path, r.Err)
	}
	rep := r.Report
	records := "streaming"
	if rep.NumRecs != nil {
		records = fmt.Sprint(*rep.NumRecs)
	}
	return fmt.Sprintf("%s\t%s\tdims=%d atts=%d vars=%d records=%s",
		r.Path, rep.Version, len(rep.Dimensions), len(rep.Attributes), len(rep.Variables), records)
}
