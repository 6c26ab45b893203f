package ast

import "github.com/yaklabco/emblem/pkg/source"

// Node is anything that occupies a span of source text.
type Node interface {
	Span() source.Span
}

// File is an ordered sequence of paragraphs parsed from one source file.
type File[C Node] struct {
	// Source is the file the tree was built from.
	Source *source.File

	// Paragraphs are the blank-line separated blocks of the file.
	Paragraphs []Paragraph[C]
}

// Span returns the span of the whole source file.
func (f *File[C]) Span() source.Span {
	if f.Source == nil {
		return source.Span{}
	}
	return f.Source.Span()
}

// Paragraph is an ordered sequence of parts.
type Paragraph[C Node] struct {
	Parts []Part[C]
	Loc   source.Span
}

// Span returns the paragraph's span.
func (p Paragraph[C]) Span() source.Span {
	return p.Loc
}

// PartKind tags a Part as an inline line or a block-level command.
type PartKind uint8

const (
	// PartLine is a line of inline content.
	PartLine PartKind = iota

	// PartCommand is a single block-level command invocation.
	PartCommand
)

func (k PartKind) String() string {
	switch k {
	case PartLine:
		return "line"
	case PartCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Part is one line-level unit of a paragraph.
// Exactly one of Line (for PartLine) or Command (for PartCommand) is set.
type Part[C Node] struct {
	Kind    PartKind
	Line    []C
	Command C
	Loc     source.Span
}

// Span returns the part's span.
func (p Part[C]) Span() source.Span {
	return p.Loc
}

// Contents returns the part's content nodes in order.
func (p Part[C]) Contents() []C {
	if p.Kind == PartCommand {
		return []C{p.Command}
	}
	return p.Line
}

// LinePart builds a PartLine.
func LinePart[C Node](content []C, loc source.Span) Part[C] {
	return Part[C]{Kind: PartLine, Line: content, Loc: loc}
}

// CommandPart builds a PartCommand.
func CommandPart[C Node](command C, loc source.Span) Part[C] {
	return Part[C]{Kind: PartCommand, Command: command, Loc: loc}
}
