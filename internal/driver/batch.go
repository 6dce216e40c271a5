package driver

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
	"time"

	"golang.org/x/sync/errgroup"

	"qasmc/internal/pipeline"
	"qasmc/internal/project"
	"qasmc/internal/source"
	"qasmc/internal/trace"
)

// Mode selects how far a batch run goes for every file.
type Mode uint8

const (
	// ModeValidate stops after the switch checks.
	ModeValidate Mode = iota
	// ModeUnroll flattens the program and builds its Document.
	ModeUnroll
)

// BatchOptions configure RunFiles.
type BatchOptions struct {
	Mode    Mode
	Program Options
	Jobs    int
	// Cache is consulted in ModeUnroll only; nil disables it.
	Cache *DiskCache
	Sink  pipeline.ProgressSink
}

// FileResult is the outcome for one input file. Program is nil on a cache
// hit or when the file could not be read.
type FileResult struct {
	Path    string
	Program *Program
	Doc     *Document
	Cached  bool
	Err     error
	Timings pipeline.Timings
}

// ListQASMFiles returns the sorted *.qasm files under dir.
func ListQASMFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".qasm") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns command-line arguments (files or directories) into the
// list of files to process.
func ExpandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := ListQASMFiles(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	return out, nil
}

// RunFiles processes files in parallel. Per-file failures are stored in the
// results; the returned error is non-nil only when ctx is cancelled.
func RunFiles(ctx context.Context, files []string, opts BatchOptions) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален, мьютекс не нужен
			results[i] = runFile(gctx, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runFile(ctx context.Context, path string, opts BatchOptions) (res FileResult) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", path)
	defer span.End("")

	res.Path = path
	stage := pipeline.StageParse
	began := time.Now()
	step := func(next pipeline.Stage) {
		elapsed := time.Since(began)
		res.Timings.Add(stage, elapsed)
		stage, began = next, time.Now()
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: next, Status: pipeline.StatusWorking})
	}
	defer func() {
		res.Timings.Add(stage, time.Since(began))
		status := pipeline.StatusDone
		switch {
		case res.Err != nil:
			status = pipeline.StatusError
		case res.Cached:
			status = pipeline.StatusCached
		}
		pipeline.Emit(opts.Sink, pipeline.Event{
			File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: res.Timings.Total(),
		})
	}()

	pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusWorking})
	fset := source.NewFileSet()
	fileID, err := fset.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to load %s: %w", path, err)
		return res
	}

	var key project.Digest
	if opts.Mode == ModeUnroll && opts.Cache != nil {
		key = CacheKey(fset.Get(fileID), opts.Program)
		if doc, ok, err := opts.Cache.Get(key); err == nil && ok {
			doc.Path = path
			res.Doc, res.Cached = doc, true
			return res
		}
	}

	p, err := load(ctx, path, fset, fileID, opts.Program)
	if err != nil {
		res.Err = err
		return res
	}
	res.Program = p

	if opts.Mode == ModeValidate {
		step(pipeline.StageValidate)
		res.Err = p.ValidateContext(ctx)
		return res
	}

	step(pipeline.StageUnroll)
	if err := p.UnrollContext(ctx); err != nil {
		res.Err = err
		return res
	}

	step(pipeline.StageEmit)
	doc, err := p.Document()
	if err != nil {
		res.Err = err
		return res
	}
	res.Doc = doc
	if opts.Cache == nil {
		return res
	}
	if err := opts.Cache.Put(key, doc); err != nil {
		res.Err = fmt.Errorf("cache write for %s: %w", path, err)
	}
	return res
}

// FirstError returns the first per-file failure, in input order.
func FirstError(results []FileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// Failed counts results with an error.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// ErrNoInputs is returned when the arguments name no .qasm file.
var ErrNoInputs = errors.New("no .qasm files found")
