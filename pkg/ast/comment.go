package ast

import (
	"strings"

	"github.com/yaklabco/emblem/pkg/source"
)

// CommentNode is one element of a multi-line comment body.
// The structure is shared unchanged by the raw and resolved trees.
type CommentNode interface {
	Node
	commentNode()
}

// CommentWord is literal non-space text inside a comment.
type CommentWord struct {
	Text string
	Loc  source.Span
}

// CommentWhitespace is a literal whitespace run inside a comment,
// including line breaks.
type CommentWhitespace struct {
	Text string
	Loc  source.Span
}

// CommentIndented wraps the rest of a comment line that begins with
// indentation. Indent holds the literal leading whitespace.
type CommentIndented struct {
	Indent  string
	Content []CommentNode
	Loc     source.Span
}

// CommentNested wraps the body of a nested comment opener/closer pair.
// Its span includes both delimiters.
type CommentNested struct {
	Content []CommentNode
	Loc     source.Span
}

func (c *CommentWord) Span() source.Span       { return c.Loc }
func (c *CommentWhitespace) Span() source.Span { return c.Loc }
func (c *CommentIndented) Span() source.Span   { return c.Loc }
func (c *CommentNested) Span() source.Span     { return c.Loc }

func (*CommentWord) commentNode()       {}
func (*CommentWhitespace) commentNode() {}
func (*CommentIndented) commentNode()   {}
func (*CommentNested) commentNode()     {}

// Width returns the number of indentation bytes.
func (c *CommentIndented) Width() int {
	return len(c.Indent)
}

// CloneComments returns a deep copy of a comment body.
func CloneComments(nodes []CommentNode) []CommentNode {
	if nodes == nil {
		return nil
	}
	out := make([]CommentNode, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, cloneComment(node))
	}
	return out
}

func cloneComment(node CommentNode) CommentNode {
	switch n := node.(type) {
	case *CommentWord:
		return &CommentWord{Text: n.Text, Loc: n.Loc}
	case *CommentWhitespace:
		return &CommentWhitespace{Text: n.Text, Loc: n.Loc}
	case *CommentIndented:
		return &CommentIndented{Indent: n.Indent, Content: CloneComments(n.Content), Loc: n.Loc}
	case *CommentNested:
		return &CommentNested{Content: CloneComments(n.Content), Loc: n.Loc}
	default:
		panic(InternalError{Msg: "unknown comment node"})
	}
}

// CommentText reassembles the literal body text of a comment, with nested
// comments written back between their delimiters.
func CommentText(nodes []CommentNode) string {
	var builder strings.Builder
	writeCommentText(&builder, nodes)
	return builder.String()
}

func writeCommentText(builder *strings.Builder, nodes []CommentNode) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *CommentWord:
			builder.WriteString(n.Text)
		case *CommentWhitespace:
			builder.WriteString(n.Text)
		case *CommentIndented:
			builder.WriteString(n.Indent)
			writeCommentText(builder, n.Content)
		case *CommentNested:
			builder.WriteString("/*")
			writeCommentText(builder, n.Content)
			builder.WriteString("*/")
		}
	}
}
