package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"cvlint/internal/diag"
	"cvlint/internal/source"
)

// DirResult is the per-file outcome of a directory run.
type DirResult struct {
	Path   string
	Result *Result
	// LoadErr is set when the file could not be read; Result is nil then.
	LoadErr error
}

// listUnitFiles returns every *.cd file under dir in sorted order.
func listUnitFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cd") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every *.cd file under dir with up to jobs parallel
// workers (0 means GOMAXPROCS). Results come back in path order regardless
// of completion order; every unit is analyzed in isolation against its own
// declaration table.
func AnalyzeDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []DirResult, error) {
	files, err := listUnitFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Loading mutates the shared set, so it happens up front; the workers
	// only read.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DirResult, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			entry := DirResult{Path: path}
			if loadErr, failed := loadErrors[path]; failed {
				entry.LoadErr = loadErr
			} else {
				entry.Result = analyzeLoaded(fileSet, fileIDs[path], opts)
			}

			mu.Lock()
			results[i] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// MergeBags collects every per-file bag into one sorted bag.
func MergeBags(results []DirResult, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}
	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Result != nil {
			merged.Merge(r.Result.Bag)
		}
	}
	merged.Sort()
	return merged
}
