package parser

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

func (p *parser) parseMultiLineComment() (ast.Raw, error) {
	start := p.pos
	content, err := p.parseCommentBody(source.NewSpan(start, start+2))
	if err != nil {
		return nil, err
	}
	return &ast.RawMultiLineComment{Content: content, Loc: p.span(start)}, nil
}

// parseCommentBody consumes an opener, the body and its matching closer.
func (p *parser) parseCommentBody(opener source.Span) ([]ast.CommentNode, error) {
	if err := p.enter(opener); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos += 2
	nodes, err := p.parseCommentNodes(false)
	if err != nil {
		return nil, err
	}
	if !p.hasPrefix("*/") {
		return nil, p.fail(ErrUnbalancedComment, opener, "comment is never closed")
	}
	p.pos += 2
	return nodes, nil
}

// parseCommentNodes scans comment content up to the closer at this nesting
// level. With lineOnly set it also stops before a newline.
func (p *parser) parseCommentNodes(lineOnly bool) ([]ast.CommentNode, error) {
	var nodes []ast.CommentNode
	for !p.eof() && !p.hasPrefix("*/") {
		start := p.pos
		c := p.peek()

		switch {
		case p.hasPrefix("/*"):
			inner, err := p.parseCommentBody(source.NewSpan(start, start+2))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &ast.CommentNested{Content: inner, Loc: p.span(start)})

		case c == '\n':
			if lineOnly {
				return nodes, nil
			}
			p.pos++
			nodes = append(nodes, &ast.CommentWhitespace{Text: "\n", Loc: p.span(start)})
			if node, err := p.parseCommentIndented(); err != nil {
				return nil, err
			} else if node != nil {
				nodes = append(nodes, node)
			}

		case isHorizontalSpace(c):
			for !p.eof() && isHorizontalSpace(p.peek()) {
				p.pos++
			}
			nodes = append(nodes, &ast.CommentWhitespace{Text: p.src[start:p.pos], Loc: p.span(start)})

		default:
			p.pos++
			for !p.eof() && !isSpace(p.peek()) && !p.hasPrefix("*/") && !p.hasPrefix("/*") {
				p.pos++
			}
			nodes = append(nodes, &ast.CommentWord{Text: p.src[start:p.pos], Loc: p.span(start)})
		}
	}
	return nodes, nil
}

// parseCommentIndented wraps an indented comment line. It returns nil when
// the line is not indented or holds only whitespace.
func (p *parser) parseCommentIndented() (ast.CommentNode, error) {
	start := p.pos
	indent := p.indentAt(start)
	if indent == "" || p.lineBlankAt(start) {
		return nil, nil
	}
	p.pos += len(indent)
	content, err := p.parseCommentNodes(true)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		p.pos = start
		return nil, nil
	}
	return &ast.CommentIndented{Indent: indent, Content: content, Loc: p.span(start)}, nil
}
