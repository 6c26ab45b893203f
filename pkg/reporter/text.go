package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/emblem/internal/ui/pretty"
	"github.com/yaklabco/emblem/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	items := entries(result)
	for start := 0; start < len(items); {
		end := start
		for end < len(items) && items[end].path == items[start].path {
			end++
		}
		r.writeFile(items[start:end])
		start = end
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return len(items), nil
}

func (r *TextReporter) writeFile(items []entry) {
	path := r.opts.displayPath(items[0].path)
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(items)))

	for i := range items {
		item := &items[i]
		if item.err != nil {
			fmt.Fprintf(r.bw, "  %s  %s\n", r.styles.Error.Render("error"), item.err)
			continue
		}
		if r.opts.ShowContext {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, item.file, &item.diag))
			continue
		}
		location := path
		if rng, ok := item.rangeOf(); ok {
			location += ":" + rng.Start.String()
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(location, nil, &item.diag))
	}
	fmt.Fprintln(r.bw)
}
