package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/frontend"
	"github.com/yaklabco/emblem/pkg/reporter"
	"github.com/yaklabco/emblem/pkg/runner"
)

const workDir = "/work"

// outcome compiles text as if it were read from /work/name.
func outcome(t *testing.T, name, text string) runner.FileOutcome {
	t.Helper()
	path := filepath.Join(workDir, name)
	res, err := frontend.Compile(context.Background(), path, text, frontend.Options{})
	if err != nil {
		return runner.FileOutcome{Path: path, Error: err}
	}
	return runner.FileOutcome{Path: path, Result: &frontend.FileResult{Result: res, Path: path}}
}

// sampleResult holds a clean file, one with a lint finding, one that fails
// to parse and one that could not be read.
func sampleResult(t *testing.T) *runner.Result {
	t.Helper()
	result := &runner.Result{Files: []runner.FileOutcome{
		outcome(t, "a.em", "clean\n"),
		outcome(t, "b.em", ".p[x,x]{y}\n"),
		outcome(t, "c.em", "a */\n"),
		{Path: filepath.Join(workDir, "d.em"), Error: errors.New("permission denied")},
	}}
	result.Stats = runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  2,
		FilesErrored:    2,
		FilesWithIssues: 1,
		Diagnostics:     diag.Counts{Warnings: 1},
	}
	return result
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = workDir
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		parsed, err := reporter.ParseFormat(format.String())
		require.NoError(t, err)
		assert.Equal(t, format, parsed)
	}

	parsed, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatText, parsed)

	_, err = reporter.ParseFormat("diff")
	require.Error(t, err)
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowContext: true, ShowSummary: true}, sampleResult(t))
	assert.Equal(t, 3, count)

	want := strings.Join([]string{
		"b.em (1 issue)",
		"  b.em:1:1  warning  duplicate attributes  (duplicate-attrs)",
		"    1 | .p[x,x]{y}",
		"      |      ^ found duplicate 'x' here",
		"    1 | .p[x,x]{y}",
		"      |    - 'x' first defined here",
		"    help: remove multiple occurrences of the same attribute",
		"",
		"c.em (1 issue)",
		"  c.em:1:3  error  unbalanced comment: comment closer without an opener",
		"    1 | a */",
		"      |   ^^",
		"",
		"d.em (1 issue)",
		"  error  permission denied",
		"",
		"1 issue (1 warning) in 1 file, 2 files failed",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestTextReporter_NoContext(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{outcome(t, "b.em", "\n.p[x,x]{y}\n")}}
	out, _ := report(t, reporter.Options{Format: reporter.FormatText}, result)

	assert.Equal(t, "b.em (1 issue)\n"+
		"  b.em:2:1  warning  duplicate attributes  (duplicate-attrs)\n"+
		"    help: remove multiple occurrences of the same attribute\n\n", out)
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatJSON}, sampleResult(t))
	assert.Equal(t, 3, count)

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 4)

	assert.Equal(t, "a.em", doc.Files[0].Path)
	assert.Empty(t, doc.Files[0].Diagnostics)

	dup := doc.Files[1].Diagnostics
	require.Len(t, dup, 1)
	assert.Equal(t, "duplicate-attrs", dup[0].Lint)
	assert.Equal(t, "warning", dup[0].Severity)
	assert.Equal(t, &reporter.JSONRange{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 11}, dup[0].Location)
	require.Len(t, dup[0].Notes, 2)
	assert.Equal(t, reporter.JSONRange{StartLine: 1, StartColumn: 6, EndLine: 1, EndColumn: 7}, dup[0].Notes[0].Location)

	fatal := doc.Files[2]
	assert.Contains(t, fatal.Error, "found at 1:3:1:5")
	require.Len(t, fatal.Diagnostics, 1)
	assert.Empty(t, fatal.Diagnostics[0].Lint)
	assert.Equal(t, "error", fatal.Diagnostics[0].Severity)

	assert.Equal(t, "permission denied", doc.Files[3].Error)
	assert.Empty(t, doc.Files[3].Diagnostics)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    4,
		FilesWithIssues: 2,
		FilesErrored:    2,
		TotalIssues:     2,
		BySeverity:      map[string]int{"warning": 1, "error": 1},
	}, doc.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, nil)
	assert.Equal(t, `{"version":"1","files":[],"summary":{"filesChecked":0,"filesWithIssues":0,"filesErrored":0,"filesWritten":0,"totalIssues":0,"bySeverity":{}}}`+"\n", out)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	opts := reporter.Options{
		Format:      reporter.FormatSARIF,
		ToolVersion: "1.0.0",
		Lints:       []config.LintInfo{{ID: "duplicate-attrs", Description: "repeated attributes", Enabled: true}},
	}
	out, count := report(t, opts, sampleResult(t))
	assert.Equal(t, 3, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "em", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "repeated attributes", run.Tool.Driver.Rules[0].ShortDescription.Text)

	require.Len(t, run.Results, 3)
	assert.Equal(t, "duplicate-attrs", run.Results[0].RuleID)
	assert.Equal(t, "warning", run.Results[0].Level)
	assert.Equal(t, "b.em", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Len(t, run.Results[0].RelatedLocations, 2)

	assert.Equal(t, "parse-error", run.Results[1].RuleID)
	assert.Equal(t, "error", run.Results[1].Level)
	assert.Equal(t, 3, run.Results[1].Locations[0].PhysicalLocation.Region.StartColumn)

	assert.Equal(t, "parse-error", run.Results[2].RuleID)
	assert.Nil(t, run.Results[2].Locations[0].PhysicalLocation.Region)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatTable}, sampleResult(t))
	assert.Equal(t, 3, count)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "FILE  LOC  SEVERITY  LINT             MESSAGE", lines[0])
	assert.Equal(t, "b.em  1:1  warning   duplicate-attrs  duplicate attributes", lines[2])
	assert.Equal(t, "c.em  1:3  error     -                unbalanced comment: comment closer without an opener", lines[3])
	assert.Equal(t, "d.em  -    error     -                permission denied", lines[4])
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSummary}, sampleResult(t))
	assert.Equal(t, 3, count)

	assert.Contains(t, out, "Lints\n")
	assert.Contains(t, out, "(parse error)    2\n")
	assert.Contains(t, out, "duplicate-attrs  1\n")
	assert.Contains(t, out, "Files\n")
	assert.Contains(t, out, "b.em  1\n")
	assert.Contains(t, out, "Failed to compile some files")

	out, count = report(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})
	assert.Zero(t, count)
	assert.Equal(t, "No issues found\n", out)
}
