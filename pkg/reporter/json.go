package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/emblem/pkg/runner"
)

// jsonSchemaVersion versions the JSON document layout.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Output      string           `json:"output,omitempty"`
	Written     bool             `json:"written,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Fatal parse errors appear
// with severity "error" and no lint.
type JSONDiagnostic struct {
	Lint     string     `json:"lint,omitempty"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
	Location *JSONRange `json:"location,omitempty"`
	Notes    []JSONNote `json:"notes,omitempty"`
	Help     string     `json:"help,omitempty"`
}

// JSONRange is a 1-based line/column range.
type JSONRange struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// JSONNote is an annotation on a related span.
type JSONNote struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Location JSONRange `json:"location"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	FilesWritten    int            `json:"filesWritten"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return len(entries(result)), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	index := make(map[string]int, len(result.Files))
	for _, outcome := range result.Files {
		index[outcome.Path] = len(output.Files)
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(outcome.Path),
			Diagnostics: make([]JSONDiagnostic, 0),
			Output:      outcome.OutputPath,
			Written:     outcome.Written,
		}
		if outcome.Error != nil {
			fileResult.Error = outcome.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
		if outcome.Written {
			output.Summary.FilesWritten++
		}
	}

	for _, item := range entries(result) {
		if item.err != nil {
			continue
		}
		file := &output.Files[index[item.path]]
		file.Diagnostics = append(file.Diagnostics, toJSONDiagnostic(item))
		output.Summary.TotalIssues++
		output.Summary.BySeverity[item.diag.Severity.String()]++
	}

	for _, file := range output.Files {
		if len(file.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
	}
	output.Summary.FilesChecked = len(output.Files)
	output.Summary.FilesErrored = result.Stats.FilesErrored
	return output
}

func toJSONDiagnostic(item entry) JSONDiagnostic {
	out := JSONDiagnostic{
		Lint:     item.diag.Lint,
		Severity: item.diag.Severity.String(),
		Message:  item.diag.Message,
		Help:     item.diag.Help,
	}
	rng, ok := item.rangeOf()
	if !ok {
		return out
	}
	out.Location = &JSONRange{
		StartLine:   rng.Start.Line,
		StartColumn: rng.Start.Column,
		EndLine:     rng.End.Line,
		EndColumn:   rng.End.Column,
	}
	for _, note := range item.diag.Src.Notes {
		noteRange := item.file.Range(note.Span)
		out.Notes = append(out.Notes, JSONNote{
			Severity: note.Severity.String(),
			Message:  note.Message,
			Location: JSONRange{
				StartLine:   noteRange.Start.Line,
				StartColumn: noteRange.Start.Column,
				EndLine:     noteRange.End.Line,
				EndColumn:   noteRange.End.Column,
			},
		})
	}
	return out
}
