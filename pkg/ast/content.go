package ast

import (
	"strconv"
	"strings"

	"github.com/yaklabco/emblem/pkg/source"
)

// Content is a node of the resolved content tree.
type Content interface {
	Node
	contentNode()
}

// Document is the resolver's output.
type Document = File[Content]

// ContentParagraph is a paragraph of resolved content.
type ContentParagraph = Paragraph[Content]

// ContentPart is a part of resolved content.
type ContentPart = Part[Content]

// Command is a document command invocation.
//
// The optional slots distinguish "not written" from "written but empty":
// Attrs and Remainder are nil when absent; InlineArgs and Trailers are nil
// when absent and hold at least one element when written.
type Command struct {
	Name       string
	Pluses     int
	Attrs      *Attrs
	InlineArgs [][]Content
	Remainder  *Remainder
	Trailers   []ContentParagraph
	Loc        source.Span
}

// Attrs is an attribute list in written order, duplicates included.
type Attrs struct {
	Items []Attribute
	Loc   source.Span
}

// Attribute is a name with an optional value.
type Attribute struct {
	Name  string
	Value *string
	Loc   source.Span
}

// Remainder is the rest-of-line argument of a command.
type Remainder struct {
	Content []Content
	Loc     source.Span
}

// Word is literal text.
type Word struct {
	Text string
	Loc  source.Span
}

// Whitespace is a literal whitespace run.
type Whitespace struct {
	Text string
	Loc  source.Span
}

// SugarKind identifies a built-in inline formatting construct.
type SugarKind uint8

// Sugar kinds.
const (
	Italic SugarKind = iota
	Bold
	Monospace
	Smallcaps
	AlternateFace
)

func (k SugarKind) String() string {
	switch k {
	case Italic:
		return "italic"
	case Bold:
		return "bold"
	case Monospace:
		return "monospace"
	case Smallcaps:
		return "smallcaps"
	case AlternateFace:
		return "alternate-face"
	default:
		return "unknown"
	}
}

// Sugar is inline formatting wrapping resolved content.
type Sugar struct {
	Kind    SugarKind
	Content []Content
	Loc     source.Span
}

// DashKind identifies a dash token.
type DashKind uint8

// Dash kinds.
const (
	Hyphen DashKind = iota
	En
	Em
)

func (k DashKind) String() string {
	switch k {
	case Hyphen:
		return "hyphen"
	case En:
		return "en"
	case Em:
		return "em"
	default:
		return "unknown"
	}
}

// Dash is a classified run of hyphens.
type Dash struct {
	Kind DashKind
	Loc  source.Span
}

// GlueKind identifies a glue token.
type GlueKind uint8

// Glue kinds.
const (
	Tight GlueKind = iota
	Nbsp
)

func (k GlueKind) String() string {
	switch k {
	case Tight:
		return "tight"
	case Nbsp:
		return "nbsp"
	default:
		return "unknown"
	}
}

// Glue is a classified run of tildes.
type Glue struct {
	Kind GlueKind
	Loc  source.Span
}

// Verbatim is literal text exempt from markup.
type Verbatim struct {
	Text string
	Loc  source.Span
}

// Comment is a single-line comment.
type Comment struct {
	Text string
	Loc  source.Span
}

// MultiLineComment carries a comment body's recursive structure.
type MultiLineComment struct {
	Content []CommentNode
	Loc     source.Span
}

func (n *Command) Span() source.Span          { return n.Loc }
func (n *Word) Span() source.Span             { return n.Loc }
func (n *Whitespace) Span() source.Span       { return n.Loc }
func (n *Sugar) Span() source.Span            { return n.Loc }
func (n *Dash) Span() source.Span             { return n.Loc }
func (n *Glue) Span() source.Span             { return n.Loc }
func (n *Verbatim) Span() source.Span         { return n.Loc }
func (n *Comment) Span() source.Span          { return n.Loc }
func (n *MultiLineComment) Span() source.Span { return n.Loc }

func (*Command) contentNode()          {}
func (*Word) contentNode()             {}
func (*Whitespace) contentNode()       {}
func (*Sugar) contentNode()            {}
func (*Dash) contentNode()             {}
func (*Glue) contentNode()             {}
func (*Verbatim) contentNode()         {}
func (*Comment) contentNode()          {}
func (*MultiLineComment) contentNode() {}

// NewDash builds a Dash from a run of 1 to 3 hyphens.
// Any other input is a caller bug and panics with InternalError.
func NewDash(run string, loc source.Span) *Dash {
	if run == "" || strings.Trim(run, "-") != "" {
		panic(InternalError{Msg: "dash built from non-dash text " + strconv.Quote(run)})
	}
	switch len(run) {
	case 1:
		return &Dash{Kind: Hyphen, Loc: loc}
	case 2:
		return &Dash{Kind: En, Loc: loc}
	case 3:
		return &Dash{Kind: Em, Loc: loc}
	default:
		panic(InternalError{Msg: "dash built from run of length " + strconv.Itoa(len(run))})
	}
}

// NewGlue builds a Glue from a run of 1 or 2 tildes.
// Any other input is a caller bug and panics with InternalError.
func NewGlue(run string, loc source.Span) *Glue {
	if run == "" || strings.Trim(run, "~") != "" {
		panic(InternalError{Msg: "glue built from non-glue text " + strconv.Quote(run)})
	}
	switch len(run) {
	case 1:
		return &Glue{Kind: Tight, Loc: loc}
	case 2:
		return &Glue{Kind: Nbsp, Loc: loc}
	default:
		panic(InternalError{Msg: "glue built from run of length " + strconv.Itoa(len(run))})
	}
}

// HasAttrs reports whether an attribute block was written.
func (n *Command) HasAttrs() bool { return n.Attrs != nil }

// HasInlineArgs reports whether at least one inline group was written.
func (n *Command) HasInlineArgs() bool { return n.InlineArgs != nil }

// HasRemainder reports whether a remainder argument was written.
func (n *Command) HasRemainder() bool { return n.Remainder != nil }

// HasTrailers reports whether trailer arguments were written.
func (n *Command) HasTrailers() bool { return n.Trailers != nil }

// Lookup returns the first attribute with the given name.
func (a *Attrs) Lookup(name string) (Attribute, bool) {
	if a == nil {
		return Attribute{}, false
	}
	for _, attr := range a.Items {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// HasValue reports whether the attribute was written with a value.
func (a Attribute) HasValue() bool {
	return a.Value != nil
}
