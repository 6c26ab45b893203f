// Package diag defines advisory diagnostics: a headline message, an
// optional source anchor annotated with notes, and an optional hint.
//
// Diagnostics are plain values. Nothing in this package logs or prints;
// see pkg/reporter for rendering.
package diag

import (
	"github.com/yaklabco/emblem/pkg/source"
)

// Note is a message attached to one span of source text.
type Note struct {
	Span     source.Span
	Severity Severity
	Message  string
}

// NoteInfo returns an informational note.
func NoteInfo(span source.Span, message string) Note {
	return Note{Span: span, Severity: SevInfo, Message: message}
}

// NoteWarn returns a warning note.
func NoteWarn(span source.Span, message string) Note {
	return Note{Span: span, Severity: SevWarn, Message: message}
}

// Src anchors a diagnostic to a span and carries its notes in order.
type Src struct {
	Anchor source.Span
	Notes  []Note
}

// NewSrc returns a source anchor with no notes.
func NewSrc(anchor source.Span) Src {
	return Src{Anchor: anchor}
}

// Annotate returns a copy of s with note appended.
func (s Src) Annotate(note Note) Src {
	notes := make([]Note, len(s.Notes), len(s.Notes)+1)
	copy(notes, s.Notes)
	s.Notes = append(notes, note)
	return s
}

// Diagnostic is one advisory finding.
type Diagnostic struct {
	// Lint is the ID of the lint that produced the diagnostic. Empty for
	// diagnostics built from fatal errors.
	Lint string

	// Severity indicates the importance of the diagnostic.
	Severity Severity

	// Message is the headline.
	Message string

	// Src is the annotated source location, if any.
	Src *Src

	// Help is an optional remediation hint.
	Help string
}

// Span returns the anchor span, or the zero span when there is no source.
func (d *Diagnostic) Span() source.Span {
	if d.Src == nil {
		return source.Span{}
	}
	return d.Src.Anchor
}

// HasSrc returns true if the diagnostic is anchored in source text.
func (d *Diagnostic) HasSrc() bool {
	return d.Src != nil
}

// HasHelp returns true if the diagnostic carries a hint.
func (d *Diagnostic) HasHelp() bool {
	return d.Help != ""
}

// Builder helps construct Diagnostic values.
type Builder struct {
	diag Diagnostic
}

// New starts a diagnostic with the given severity and message.
func New(severity Severity, message string) *Builder {
	return &Builder{diag: Diagnostic{Severity: severity, Message: message}}
}

// Warn starts a warning.
func Warn(message string) *Builder {
	return New(SevWarn, message)
}

// Info starts an informational diagnostic.
func Info(message string) *Builder {
	return New(SevInfo, message)
}

// Lint sets the producing lint's ID.
func (b *Builder) Lint(id string) *Builder {
	b.diag.Lint = id
	return b
}

// Src sets the source anchor.
func (b *Builder) Src(src Src) *Builder {
	b.diag.Src = &src
	return b
}

// Help sets the remediation hint.
func (b *Builder) Help(text string) *Builder {
	b.diag.Help = text
	return b
}

// Build returns the constructed Diagnostic.
func (b *Builder) Build() Diagnostic {
	out := b.diag
	if out.Src != nil {
		src := *out.Src
		out.Src = &src
	}
	return out
}
