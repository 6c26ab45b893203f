// Package html renders resolved documents as HTML fragments.
//
// Rendering is a plain recursive walk. Text is written as is, without
// escaping. Nodes with no markup of their own (glue, verbatim, comments,
// smallcaps and alternate-face sugar) currently render as nothing.
package html

import (
	"strings"

	"github.com/yaklabco/emblem/pkg/ast"
)

// Builder accumulates rendered HTML.
type Builder struct {
	out strings.Builder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Render renders every paragraph of doc.
func Render(doc *ast.Document) string {
	b := NewBuilder()
	if doc != nil {
		for _, par := range doc.Paragraphs {
			b.Paragraph(par)
		}
	}
	return b.String()
}

// Paragraph renders each part of par. A line part is followed by a newline;
// a command part is not.
func (b *Builder) Paragraph(par ast.ContentParagraph) {
	for _, part := range par.Parts {
		switch part.Kind {
		case ast.PartLine:
			b.Content(part.Line)
			b.out.WriteByte('\n')
		case ast.PartCommand:
			b.Node(part.Command)
		}
	}
}

// Content renders nodes in order.
func (b *Builder) Content(nodes []ast.Content) {
	for _, node := range nodes {
		b.Node(node)
	}
}

// Node renders one node and its children.
func (b *Builder) Node(node ast.Content) {
	switch n := node.(type) {
	case *ast.Command:
		b.command(n)
	case *ast.Word:
		b.out.WriteString(n.Text)
	case *ast.Whitespace:
		b.out.WriteString(n.Text)
	case *ast.Sugar:
		b.sugar(n)
	case *ast.Dash:
		b.out.WriteString(dashGlyph(n.Kind))
	}
}

func (b *Builder) command(cmd *ast.Command) {
	b.out.WriteByte('<')
	b.out.WriteString(cmd.Name)
	if cmd.Attrs != nil {
		for _, attr := range cmd.Attrs.Items {
			b.out.WriteByte(' ')
			b.out.WriteString(attr.Name)
			if attr.Value != nil {
				b.out.WriteString(`="`)
				b.out.WriteString(*attr.Value)
				b.out.WriteByte('"')
			}
		}
	}
	b.out.WriteByte('>')

	for _, group := range cmd.InlineArgs {
		b.Content(group)
	}
	if cmd.Remainder != nil {
		b.Content(cmd.Remainder.Content)
	}
	for _, par := range cmd.Trailers {
		b.Paragraph(par)
	}

	b.out.WriteString("</")
	b.out.WriteString(cmd.Name)
	b.out.WriteByte('>')
}

func (b *Builder) sugar(s *ast.Sugar) {
	tag, ok := sugarTag(s.Kind)
	if !ok {
		return
	}
	b.out.WriteString("<" + tag + ">")
	b.Content(s.Content)
	b.out.WriteString("</" + tag + ">")
}

func sugarTag(kind ast.SugarKind) (string, bool) {
	switch kind {
	case ast.Italic:
		return "i", true
	case ast.Bold:
		return "b", true
	case ast.Monospace:
		return "code", true
	default:
		return "", false
	}
}

func dashGlyph(kind ast.DashKind) string {
	switch kind {
	case ast.En:
		return "–"
	case ast.Em:
		return "—"
	default:
		return "-"
	}
}

// String returns everything rendered so far.
func (b *Builder) String() string {
	return b.out.String()
}

// Len returns the number of bytes rendered so far.
func (b *Builder) Len() int {
	return b.out.Len()
}
