package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/yaklabco/emblem/internal/ui/pretty"
	"github.com/yaklabco/emblem/pkg/runner"
)

// fatalLabel stands in for a lint ID on fatal parse errors.
const fatalLabel = "(parse error)"

// SummaryReporter prints aggregate counts per lint and per file instead of
// individual diagnostics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

type tally struct {
	key   string
	count int
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	items := entries(result)
	if len(items) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	byLint := map[string]int{}
	byFile := map[string]int{}
	for _, item := range items {
		lint := item.diag.Lint
		if lint == "" {
			lint = fatalLabel
		}
		byLint[lint]++
		byFile[r.opts.displayPath(item.path)]++
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Lints"))
	fmt.Fprint(r.bw, r.styles.FormatTable([]string{"LINT", "COUNT"}, tallyRows(byLint)))
	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))
	fmt.Fprint(r.bw, r.styles.FormatTable([]string{"FILE", "COUNT"}, tallyRows(byFile)))

	if result != nil {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}
	return len(items), nil
}

// tallyRows orders counts descending, then by key.
func tallyRows(counts map[string]int) [][]string {
	tallies := make([]tally, 0, len(counts))
	for key, count := range counts {
		tallies = append(tallies, tally{key: key, count: count})
	}
	slices.SortFunc(tallies, func(a, b tally) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(a.key, b.key))
	})

	rows := make([][]string, 0, len(tallies))
	for _, t := range tallies {
		rows = append(rows, []string{t.key, strconv.Itoa(t.count)})
	}
	return rows
}
