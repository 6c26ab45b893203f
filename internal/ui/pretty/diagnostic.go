package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/source"
)

// FormatDiagnostic formats a diagnostic for terminal output. The first line
// carries the location, severity, message and lint ID; each note follows
// as a source excerpt with its span underlined, then the help text.
// file may be nil, in which case only the header and help are written.
func (s *Styles) FormatDiagnostic(path string, file *source.File, d *diag.Diagnostic) string {
	var builder strings.Builder

	location := s.FilePath.Render(path)
	if file != nil && d.HasSrc() {
		location += s.Location.Render(":" + file.Position(d.Src.Anchor.Start).String())
	}

	builder.WriteString("  " + location + "  " + s.FormatSeverity(d.Severity) + "  " + s.Message.Render(d.Message))
	if d.Lint != "" {
		builder.WriteString("  " + s.LintID.Render("("+d.Lint+")"))
	}
	builder.WriteByte('\n')

	if file != nil && d.HasSrc() {
		notes := d.Src.Notes
		if len(notes) == 0 {
			notes = []diag.Note{{Span: d.Src.Anchor, Severity: d.Severity}}
		}
		gutter := gutterWidth(file, notes)
		for _, note := range notes {
			builder.WriteString(s.FormatSnippet(file, note, gutter))
		}
	}

	if d.HasHelp() {
		builder.WriteString("    " + s.Dim.Render("help:") + " " + s.Help.Render(d.Help) + "\n")
	}
	return builder.String()
}

// FormatSeverity returns a styled severity name.
func (s *Styles) FormatSeverity(sev diag.Severity) string {
	return s.severityStyle(sev).Render(sev.String())
}

func (s *Styles) severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return s.Error
	case diag.SevWarn:
		return s.Warning
	default:
		return s.Info
	}
}

// FormatSnippet writes the first source line a note covers with the
// note's span underlined beneath it. Warnings and errors are marked with
// '^', informational notes with '-'. Multi-line spans are underlined to
// the end of their first line.
func (s *Styles) FormatSnippet(file *source.File, note diag.Note, gutter int) string {
	rng := file.Range(note.Span)
	if !rng.Start.IsValid() {
		return ""
	}
	line := file.Line(rng.Start.Line)

	start := min(rng.Start.Column-1, len(line))
	end := len(line)
	if rng.IsSingleLine() {
		end = min(max(rng.End.Column-1, start), len(line))
	}

	mark := "^"
	if note.Severity == diag.SevInfo {
		mark = "-"
	}
	width := max(runewidth.StringWidth(expandTabs(line[start:end])), 1)

	number := strconv.Itoa(rng.Start.Line)
	blank := strings.Repeat(" ", gutter)
	style := s.severityStyle(note.Severity)

	var builder strings.Builder
	fmt.Fprintf(&builder, "    %s %s %s\n",
		s.Gutter.Render(strings.Repeat(" ", gutter-len(number))+number), s.Gutter.Render("|"), s.Source.Render(expandTabs(line)))

	underline := padFor(line[:start]) + style.Render(strings.Repeat(mark, width))
	if note.Message != "" {
		underline += " " + style.Render(note.Message)
	}
	fmt.Fprintf(&builder, "    %s %s %s\n", blank, s.Gutter.Render("|"), underline)
	return builder.String()
}

// tabWidth matches the tab expansion lipgloss applies when rendering.
const tabWidth = 4

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// padFor returns blank space as wide as prefix on screen.
func padFor(prefix string) string {
	return strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix)))
}

func gutterWidth(file *source.File, notes []diag.Note) int {
	width := 1
	for _, note := range notes {
		line := file.Position(note.Span.Start).Line
		width = max(width, len(strconv.Itoa(line)))
	}
	return width
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		noun := "issues"
		if issueCount == 1 {
			noun = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, noun))
	}
	return header
}
