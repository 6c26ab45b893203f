package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/emblem/internal/ui/pretty"
	"github.com/yaklabco/emblem/pkg/runner"
)

// TableReporter formats results as one table row per diagnostic.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	items := entries(result)
	if len(items) > 0 {
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, r.row(item))
		}
		fmt.Fprint(r.bw, r.styles.FormatTable([]string{"FILE", "LOC", "SEVERITY", "LINT", "MESSAGE"}, rows))
	}

	if r.opts.ShowSummary && result != nil {
		if len(items) > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return len(items), nil
}

func (r *TableReporter) row(item entry) []string {
	path := r.opts.displayPath(item.path)
	if item.err != nil {
		return []string{path, "-", "error", "-", item.err.Error()}
	}

	loc := "-"
	if rng, ok := item.rangeOf(); ok {
		loc = rng.Start.String()
	}
	lint := item.diag.Lint
	if lint == "" {
		lint = "-"
	}
	return []string{path, loc, item.diag.Severity.String(), lint, item.diag.Message}
}
