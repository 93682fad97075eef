package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/embeddedkit/halgen/internal/cparse"
	"github.com/embeddedkit/halgen/internal/generator"
)

// ProgressReporter receives batch progress callbacks.
type ProgressReporter interface {
	OnBatchStart(totalFiles int)
	OnFileProcessed(file string)
	OnBatchComplete(stats *Stats)
}

// NoOpProgressReporter discards all progress callbacks.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnBatchStart(int)       {}
func (NoOpProgressReporter) OnFileProcessed(string) {}
func (NoOpProgressReporter) OnBatchComplete(*Stats) {}

// Stats summarizes one batch run.
type Stats struct {
	Generated      int
	Skipped        int
	Failed         int
	ProcessingTime time.Duration
}

// Options configures a Runner.
type Options struct {
	OutDir     string
	Workers    int      // 0 means NumCPU
	ExtraFlags []string // appended to every file's compiler flags
	Progress   ProgressReporter
}

// Runner drives the per-file pipeline over a batch of discovered files.
// Files are independent: each failure is reported on stderr and the batch
// continues. Heuristic failures are deterministic, so nothing is retried.
type Runner struct {
	db         *cparse.CompilationDatabase
	cache      *ParseCache
	outDir     string
	workers    int
	extraFlags []string
	progress   ProgressReporter

	mu    sync.Mutex
	stats Stats
}

// NewRunner creates a batch runner. cache may be nil to disable parse
// memoization.
func NewRunner(db *cparse.CompilationDatabase, cache *ParseCache, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	progress := opts.Progress
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	return &Runner{
		db:         db,
		cache:      cache,
		outDir:     opts.OutDir,
		workers:    workers,
		extraFlags: opts.ExtraFlags,
		progress:   progress,
	}
}

// Run processes every file, one worker per file up to the configured worker
// count. Each worker owns its parser instance; nothing else is mutated
// concurrently. The returned error reflects only batch-level problems
// (cancellation), never per-file failures.
func (r *Runner) Run(ctx context.Context, files []string) (*Stats, error) {
	start := time.Now()
	r.mu.Lock()
	r.stats = Stats{}
	r.mu.Unlock()

	r.progress.OnBatchStart(len(files))

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := cparse.NewParser()
			for file := range jobs {
				r.processOne(ctx, parser, file)
				r.progress.OnFileProcessed(file)
			}
		}()
	}

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- file
	}
	close(jobs)
	wg.Wait()

	r.mu.Lock()
	stats := r.stats
	r.mu.Unlock()
	stats.ProcessingTime = time.Since(start)

	r.progress.OnBatchComplete(&stats)
	if err := ctx.Err(); err != nil {
		return &stats, err
	}
	return &stats, nil
}

// ProcessFile runs the pipeline for a single file. Used directly by watch
// mode; Run goes through the same path.
func (r *Runner) ProcessFile(ctx context.Context, parser *cparse.Parser, file string) error {
	_, err := r.generateFile(ctx, parser, file)
	return err
}

func (r *Runner) processOne(ctx context.Context, parser *cparse.Parser, file string) {
	summary, err := r.generateFile(ctx, parser, file)
	switch {
	case errors.Is(err, generator.ErrExtensionModule):
		// Covered by the non-_ex counterpart; skipped, not an error.
		fmt.Fprintf(os.Stderr, "[OK] %s skipped (%v)\n", file, generator.ErrExtensionModule)
		r.count(func(s *Stats) { s.Skipped++ })
	case err != nil:
		fmt.Fprintf(os.Stderr, "[ERR] %s: %v\n", file, err)
		r.count(func(s *Stats) { s.Failed++ })
	default:
		fmt.Fprintf(os.Stderr, "[OK] %s\n", summary)
		r.count(func(s *Stats) { s.Generated++ })
	}
}

// generateFile is the classify → parse → generate → write chain for one
// input file. Every failure is typed and stays local to this file.
func (r *Runner) generateFile(ctx context.Context, parser *cparse.Parser, file string) (string, error) {
	classification, err := generator.Classify(filepath.Base(file))
	if err != nil {
		return "", err
	}

	unit, cached := r.cachedUnit(file)
	if !cached {
		flags := append(r.db.FlagsFor(file), r.extraFlags...)
		unit, err = parser.ParseFile(ctx, file, flags)
		if err != nil {
			return "", err
		}
		if r.cache != nil {
			r.cache.Put(file, unit)
		}
	}

	generated, err := generator.Generate(classification, unit)
	if err != nil {
		return "", err
	}

	outPath, err := WriteUnit(r.outDir, generated)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s converted to %s", file, outPath), nil
}

func (r *Runner) cachedUnit(file string) (*cparse.SourceUnit, bool) {
	if r.cache == nil {
		return nil, false
	}
	return r.cache.Get(file)
}

func (r *Runner) count(update func(*Stats)) {
	r.mu.Lock()
	update(&r.stats)
	r.mu.Unlock()
}
