// Package reporter formats the outcome of a multi-file run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/runner"
	"github.com/yaklabco/emblem/pkg/source"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	// Fatal parse errors count as issues.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// entry is one reportable item: a lint finding or a fatal file error.
type entry struct {
	path string
	file *source.File
	diag diag.Diagnostic

	// err is set for failures that carry no source location.
	err error
}

// entries flattens a run into reportable items in file order. Located fatal
// errors become error-severity diagnostics.
func entries(result *runner.Result) []entry {
	if result == nil {
		return nil
	}
	var out []entry
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			if d, file, ok := diag.FromError(outcome.Error); ok {
				out = append(out, entry{path: outcome.Path, file: file, diag: d})
			} else {
				out = append(out, entry{path: outcome.Path, err: outcome.Error})
			}
			continue
		}
		for _, d := range outcome.Diagnostics() {
			out = append(out, entry{path: outcome.Path, file: outcome.Result.File(), diag: d})
		}
	}
	return out
}

// rangeOf returns the line/column range of an entry's anchor.
func (e entry) rangeOf() (source.Range, bool) {
	if e.file == nil || !e.diag.HasSrc() {
		return source.Range{}, false
	}
	return e.file.Range(e.diag.Src.Anchor), true
}
