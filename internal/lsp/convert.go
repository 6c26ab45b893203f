package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/source"
)

// diagnosticSource names the server in published diagnostics.
const diagnosticSource = "em"

// convertDiagnostic maps a diagnostic onto the protocol's shape. Notes
// become related information pointing back into the same document.
func convertDiagnostic(uri protocol.DocumentUri, file *source.File, d *diag.Diagnostic) protocol.Diagnostic {
	severity := convertSeverity(d.Severity)
	src := diagnosticSource
	out := protocol.Diagnostic{
		Range:    convertSpan(file, d.Span()),
		Severity: &severity,
		Source:   &src,
		Message:  d.Message,
	}
	if d.Lint != "" {
		out.Code = &protocol.IntegerOrString{Value: d.Lint}
	}
	if d.HasHelp() {
		out.Message += "\nhelp: " + d.Help
	}
	if d.HasSrc() {
		for _, note := range d.Src.Notes {
			out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: convertSpan(file, note.Span)},
				Message:  note.Message,
			})
		}
	}
	return out
}

func convertSeverity(severity diag.Severity) protocol.DiagnosticSeverity {
	switch severity {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarn:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func convertSpan(file *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: convertOffset(file, span.Start),
		End:   convertOffset(file, span.End),
	}
}

// convertOffset turns a byte offset into a zero-based line and a column
// counted in UTF-16 code units.
func convertOffset(file *source.File, offset int) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	pos := file.Position(offset)
	if !pos.IsValid() {
		return protocol.Position{}
	}

	line := file.Line(pos.Line)
	col := pos.Column - 1
	units := 0
	if col > len(line) {
		units = col - len(line)
		col = len(line)
	}
	for _, r := range line[:col] {
		if r == utf8.RuneError {
			units++
			continue
		}
		units += utf16.RuneLen(r)
	}

	return protocol.Position{Line: toUInteger(pos.Line - 1), Character: toUInteger(units)}
}

func toUInteger(n int) protocol.UInteger {
	v, err := safecast.Conv[protocol.UInteger](n)
	if err != nil {
		return 0
	}
	return v
}
