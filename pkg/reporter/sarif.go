package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sarifParseRule identifies fatal parse errors, which have no lint.
const sarifParseRule = "parse-error"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []SARIFRule `json:"rules"`
}

// SARIFRule describes one lint.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          SARIFMessage    `json:"message"`
	Locations        []SARIFLocation `json:"locations,omitempty"`
	RelatedLocations []SARIFLocation `json:"relatedLocations,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	Message          *SARIFMessage         `json:"message,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:    "em",
				Version: r.opts.ToolVersion,
				Rules:   make([]SARIFRule, 0, len(r.opts.Lints)),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	for _, info := range r.opts.Lints {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
			ID:               info.ID,
			ShortDescription: SARIFMultiformatText{Text: info.Description},
			DefaultConfig:    &SARIFRuleConfig{Enabled: info.Enabled, Level: severityToSARIFLevel(diag.SevWarn)},
		})
	}

	for _, item := range entries(result) {
		uri := filepath.ToSlash(r.opts.displayPath(item.path))
		if item.err != nil {
			run.Results = append(run.Results, SARIFResult{
				RuleID:    sarifParseRule,
				Level:     severityToSARIFLevel(diag.SevError),
				Message:   SARIFMessage{Text: item.err.Error()},
				Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}}}},
			})
			continue
		}

		ruleID := item.diag.Lint
		if ruleID == "" {
			ruleID = sarifParseRule
		}
		sarifResult := SARIFResult{
			RuleID:  ruleID,
			Level:   severityToSARIFLevel(item.diag.Severity),
			Message: SARIFMessage{Text: item.diag.Message},
		}

		location := SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}}}
		if rng, ok := item.rangeOf(); ok {
			location.PhysicalLocation.Region = &SARIFRegion{
				StartLine:   rng.Start.Line,
				StartColumn: rng.Start.Column,
				EndLine:     rng.End.Line,
				EndColumn:   rng.End.Column,
			}
			for _, note := range item.diag.Src.Notes {
				noteRange := item.file.Range(note.Span)
				sarifResult.RelatedLocations = append(sarifResult.RelatedLocations, SARIFLocation{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: uri},
						Region: &SARIFRegion{
							StartLine:   noteRange.Start.Line,
							StartColumn: noteRange.Start.Column,
							EndLine:     noteRange.End.Line,
							EndColumn:   noteRange.End.Column,
						},
					},
					Message: &SARIFMessage{Text: note.Message},
				})
			}
		}
		sarifResult.Locations = []SARIFLocation{location}

		run.Results = append(run.Results, sarifResult)
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity diag.Severity) string {
	switch severity {
	case diag.SevError:
		return "error"
	case diag.SevWarn:
		return "warning"
	default:
		return "note"
	}
}
