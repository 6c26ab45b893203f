package runner

import (
	"time"

	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/frontend"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Result is set when the file compiled.
	Result *frontend.FileResult

	// Error is set when the file could not be read, parsed or written.
	Error error

	// OutputPath is where the rendering belongs, when output was requested.
	OutputPath string

	// Written is true when the output file was created or changed.
	Written bool

	// Skipped is true when output was not written; SkipReason says why.
	Skipped    bool
	SkipReason string
}

// Diagnostics returns the file's lint findings, if it compiled.
func (o FileOutcome) Diagnostics() []diag.Diagnostic {
	if o.Result == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// IsFatal reports whether the file failed with a located parse error.
func (o FileOutcome) IsFatal() bool {
	return o.Error != nil && frontend.IsFatal(o.Error)
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int
	FilesWritten    int
	FilesSkipped    int

	// Diagnostics counts lint findings by severity.
	Diagnostics diag.Counts

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall outcome of a run.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	// Stats aggregates Files.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasIssues reports whether any lint diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Diagnostics.Total() > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if len(outcome.Result.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.Diagnostics.Add(diag.Count(outcome.Result.Diagnostics))
}
