package ast

import "github.com/yaklabco/emblem/pkg/source"

// Raw is a node of the raw syntax tree, before calls are classified.
type Raw interface {
	Node
	rawNode()
}

// RawFile is the parser's output.
type RawFile = File[Raw]

// RawParagraph is a paragraph of raw content.
type RawParagraph = Paragraph[Raw]

// RawPart is a part of raw content.
type RawPart = Part[Raw]

// ArgKind classifies a raw call argument by the syntax it was written in.
type ArgKind uint8

const (
	// ArgAttrs is a bracketed attribute block.
	ArgAttrs ArgKind = iota

	// ArgInline is a braced inline argument group.
	ArgInline

	// ArgRemainder is rest-of-line content after a colon.
	ArgRemainder

	// ArgTrailer is an indented block following a double colon.
	ArgTrailer
)

func (k ArgKind) String() string {
	switch k {
	case ArgAttrs:
		return "attrs"
	case ArgInline:
		return "inline"
	case ArgRemainder:
		return "remainder"
	case ArgTrailer:
		return "trailer"
	default:
		return "unknown"
	}
}

// RawArg is one argument of a raw call. Which fields are set depends on Kind:
// ArgAttrs sets Text and TextLoc, ArgInline and ArgRemainder set Content,
// ArgTrailer sets Trailer.
type RawArg struct {
	Kind ArgKind

	// Text is the literal text between the attribute brackets.
	Text string

	// TextLoc is the span of Text.
	TextLoc source.Span

	// Content is the inline content of an inline group or remainder.
	Content []Raw

	// Trailer is the block content of a trailer argument.
	Trailer *RawParagraph

	// Loc spans the argument including its delimiters.
	Loc source.Span
}

// Span returns the argument's span.
func (a *RawArg) Span() source.Span {
	return a.Loc
}

// RawCall is an invocation whose shape is not yet disambiguated.
// Sugar is parsed into calls whose Name is the sugar delimiter.
type RawCall struct {
	Name    string
	NameLoc source.Span
	Pluses  int
	Args    []*RawArg
	Loc     source.Span
}

// RawWord is literal text. Dash and glue runs are captured as words and
// classified by the resolver.
type RawWord struct {
	Text string
	Loc  source.Span
}

// RawWhitespace is a literal whitespace run.
type RawWhitespace struct {
	Text string
	Loc  source.Span
}

// RawComment is a single-line comment; Text excludes the opener.
type RawComment struct {
	Text string
	Loc  source.Span
}

// RawMultiLineComment is a possibly nested comment; its span includes the
// delimiters.
type RawMultiLineComment struct {
	Content []CommentNode
	Loc     source.Span
}

// RawVerbatim is text taken literally; Text excludes the delimiters.
type RawVerbatim struct {
	Text string
	Loc  source.Span
}

func (n *RawCall) Span() source.Span             { return n.Loc }
func (n *RawWord) Span() source.Span             { return n.Loc }
func (n *RawWhitespace) Span() source.Span       { return n.Loc }
func (n *RawComment) Span() source.Span          { return n.Loc }
func (n *RawMultiLineComment) Span() source.Span { return n.Loc }
func (n *RawVerbatim) Span() source.Span         { return n.Loc }

func (*RawCall) rawNode()             {}
func (*RawWord) rawNode()             {}
func (*RawWhitespace) rawNode()       {}
func (*RawComment) rawNode()          {}
func (*RawMultiLineComment) rawNode() {}
func (*RawVerbatim) rawNode()         {}
