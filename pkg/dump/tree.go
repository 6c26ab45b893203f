// Package dump converts resolved documents into a plain data tree for
// debug output as YAML, JSON or MessagePack.
package dump

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

// Span is a byte range with its line:column rendering.
type Span struct {
	Start int    `json:"start" yaml:"start" msgpack:"start"`
	End   int    `json:"end" yaml:"end" msgpack:"end"`
	At    string `json:"at,omitempty" yaml:"at,omitempty" msgpack:"at,omitempty"`
}

// File is the dump of a whole document.
type File struct {
	Name       string      `json:"name" yaml:"name" msgpack:"name"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs" msgpack:"paragraphs"`
}

// Paragraph is the dump of one paragraph.
type Paragraph struct {
	Span  Span   `json:"span" yaml:"span" msgpack:"span"`
	Parts []Part `json:"parts" yaml:"parts" msgpack:"parts"`
}

// Part is the dump of one line or command part.
type Part struct {
	Kind    string `json:"kind" yaml:"kind" msgpack:"kind"`
	Span    Span   `json:"span" yaml:"span" msgpack:"span"`
	Content []Node `json:"content" yaml:"content" msgpack:"content"`
}

// Node is the dump of one content node. Only the fields meaningful for
// Kind are set. Optional command slots stay nil when not written.
type Node struct {
	Kind    string `json:"kind" yaml:"kind" msgpack:"kind"`
	Span    Span   `json:"span" yaml:"span" msgpack:"span"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty" msgpack:"variant,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`

	Name      string      `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Pluses    int         `json:"pluses,omitempty" yaml:"pluses,omitempty" msgpack:"pluses,omitempty"`
	Attrs     *Attrs      `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Inline    [][]Node    `json:"inline,omitempty" yaml:"inline,omitempty" msgpack:"inline,omitempty"`
	Remainder *Remainder  `json:"remainder,omitempty" yaml:"remainder,omitempty" msgpack:"remainder,omitempty"`
	Trailers  []Paragraph `json:"trailers,omitempty" yaml:"trailers,omitempty" msgpack:"trailers,omitempty"`

	Content []Node        `json:"content,omitempty" yaml:"content,omitempty" msgpack:"content,omitempty"`
	Comment []CommentNode `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Attrs is the dump of an attribute list.
type Attrs struct {
	Span  Span   `json:"span" yaml:"span" msgpack:"span"`
	Items []Attr `json:"items" yaml:"items" msgpack:"items"`
}

// Attr is the dump of one attribute.
type Attr struct {
	Name  string  `json:"name" yaml:"name" msgpack:"name"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Span  Span    `json:"span" yaml:"span" msgpack:"span"`
}

// Remainder is the dump of a remainder argument.
type Remainder struct {
	Span    Span   `json:"span" yaml:"span" msgpack:"span"`
	Content []Node `json:"content" yaml:"content" msgpack:"content"`
}

// CommentNode is the dump of one element of a multi-line comment body.
type CommentNode struct {
	Kind    string        `json:"kind" yaml:"kind" msgpack:"kind"`
	Span    Span          `json:"span" yaml:"span" msgpack:"span"`
	Text    string        `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Content []CommentNode `json:"content,omitempty" yaml:"content,omitempty" msgpack:"content,omitempty"`
}

// Tree converts doc into its dump form.
func Tree(doc *ast.Document) *File {
	c := converter{file: doc.Source}
	out := &File{Paragraphs: []Paragraph{}}
	if doc.Source != nil {
		out.Name = doc.Source.Name
	}
	for _, par := range doc.Paragraphs {
		out.Paragraphs = append(out.Paragraphs, c.paragraph(par))
	}
	return out
}

type converter struct {
	file *source.File
}

func (c converter) span(s source.Span) Span {
	out := Span{Start: s.Start, End: s.End}
	if c.file != nil {
		out.At = c.file.Range(s).String()
	}
	return out
}

func (c converter) paragraph(par ast.ContentParagraph) Paragraph {
	out := Paragraph{Span: c.span(par.Loc), Parts: []Part{}}
	for _, part := range par.Parts {
		out.Parts = append(out.Parts, Part{
			Kind:    part.Kind.String(),
			Span:    c.span(part.Loc),
			Content: c.nodes(part.Contents()),
		})
	}
	return out
}

func (c converter) nodes(nodes []ast.Content) []Node {
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, c.node(node))
	}
	return out
}

func (c converter) node(node ast.Content) Node {
	out := Node{Span: c.span(node.Span())}
	switch n := node.(type) {
	case *ast.Command:
		out.Kind = "command"
		out.Name = n.Name
		out.Pluses = n.Pluses
		out.Attrs = c.attrs(n.Attrs)
		if n.InlineArgs != nil {
			out.Inline = make([][]Node, 0, len(n.InlineArgs))
			for _, group := range n.InlineArgs {
				out.Inline = append(out.Inline, c.nodes(group))
			}
		}
		if n.Remainder != nil {
			out.Remainder = &Remainder{Span: c.span(n.Remainder.Loc), Content: c.nodes(n.Remainder.Content)}
		}
		if n.Trailers != nil {
			out.Trailers = make([]Paragraph, 0, len(n.Trailers))
			for _, par := range n.Trailers {
				out.Trailers = append(out.Trailers, c.paragraph(par))
			}
		}
	case *ast.Word:
		out.Kind = "word"
		out.Text = n.Text
	case *ast.Whitespace:
		out.Kind = "whitespace"
		out.Text = n.Text
	case *ast.Sugar:
		out.Kind = "sugar"
		out.Variant = n.Kind.String()
		out.Content = c.nodes(n.Content)
	case *ast.Dash:
		out.Kind = "dash"
		out.Variant = n.Kind.String()
	case *ast.Glue:
		out.Kind = "glue"
		out.Variant = n.Kind.String()
	case *ast.Verbatim:
		out.Kind = "verbatim"
		out.Text = n.Text
	case *ast.Comment:
		out.Kind = "comment"
		out.Text = n.Text
	case *ast.MultiLineComment:
		out.Kind = "multi-line-comment"
		out.Text = ast.CommentText(n.Content)
		out.Comment = c.comments(n.Content)
	default:
		panic(ast.InternalError{Msg: "dump of unknown content node"})
	}
	return out
}

func (c converter) attrs(attrs *ast.Attrs) *Attrs {
	if attrs == nil {
		return nil
	}
	out := &Attrs{Span: c.span(attrs.Loc), Items: make([]Attr, 0, len(attrs.Items))}
	for _, attr := range attrs.Items {
		out.Items = append(out.Items, Attr{Name: attr.Name, Value: attr.Value, Span: c.span(attr.Loc)})
	}
	return out
}

func (c converter) comments(nodes []ast.CommentNode) []CommentNode {
	out := make([]CommentNode, 0, len(nodes))
	for _, node := range nodes {
		item := CommentNode{Span: c.span(node.Span())}
		switch n := node.(type) {
		case *ast.CommentWord:
			item.Kind = "word"
			item.Text = n.Text
		case *ast.CommentWhitespace:
			item.Kind = "whitespace"
			item.Text = n.Text
		case *ast.CommentIndented:
			item.Kind = "indented"
			item.Text = n.Indent
			item.Content = c.comments(n.Content)
		case *ast.CommentNested:
			item.Kind = "nested"
			item.Content = c.comments(n.Content)
		}
		out = append(out, item)
	}
	return out
}
