package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/emblem/internal/logging"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/frontend"
	"github.com/yaklabco/emblem/pkg/fsutil"
)

// Compiler compiles one file from disk. *frontend.Compiler implements it.
type Compiler interface {
	CompileFile(ctx context.Context, path string) (*frontend.FileResult, error)
}

// Runner compiles discovered files with a bounded pool of workers.
type Runner struct {
	// Compiler handles each file.
	Compiler Compiler
}

// New creates a Runner backed by compiler.
func New(compiler Compiler) *Runner {
	return &Runner{Compiler: compiler}
}

// Run discovers files and compiles them concurrently. Outcomes come back in
// discovery order regardless of completion order. A failing file does not
// stop the others; only cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("run cancelled: %w", err)
			}
			result.Files[i] = r.process(groupCtx, path, opts.Output)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}

	for _, outcome := range result.Files {
		result.accumulate(outcome)
	}
	result.Stats.Duration = time.Since(started)

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDiagnostics, result.Stats.Diagnostics.Total(),
		logging.FieldJobs, jobs,
	)
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, output *OutputOptions) FileOutcome {
	outcome := FileOutcome{Path: path}

	res, err := r.Compiler.CompileFile(ctx, path)
	if err != nil {
		outcome.Error = err
		logging.FromContext(ctx).Debug("compile failed", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}
	outcome.Result = res

	if output != nil {
		r.write(ctx, &outcome, output)
	}
	return outcome
}

// ErrSourceChanged is recorded when a source changes while it is compiled.
var ErrSourceChanged = errors.New("source modified during build")

func (r *Runner) write(ctx context.Context, outcome *FileOutcome, output *OutputOptions) {
	ext := output.Ext
	if ext == "" {
		ext = config.DefaultOutputExt
	}
	outcome.OutputPath = fsutil.OutputPath(outcome.Path, output.Dir, ext)

	modified, err := fsutil.CheckModified(ctx, outcome.Result.Info)
	if err != nil {
		outcome.Error = err
		return
	}
	if modified {
		outcome.Skipped = true
		outcome.SkipReason = ErrSourceChanged.Error()
		return
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, []byte(outcome.Result.HTML), 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.OutputPath, err)
		return
	}
	outcome.Written = written
	logging.FromContext(ctx).Debug("wrote output",
		logging.FieldPath, outcome.Path,
		logging.FieldOutput, outcome.OutputPath,
		logging.FieldChanged, written,
	)
}
