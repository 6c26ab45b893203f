// Package parser turns source text into the raw syntax tree.
//
// The grammar is line oriented: blank lines separate paragraphs, each line
// of a paragraph is a part, and a call that starts its line may take an
// indented trailer block. Everything within a line is scanned by a
// recursive-descent inline scanner. Parsing stops at the first malformed
// construct and reports it as an *Error.
package parser

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

type parser struct {
	file     *source.File
	src      string
	pos      int
	depth    int
	maxDepth int
}

// Parse parses text, named name for diagnostics, into a raw tree.
// Empty input yields a file with no paragraphs.
func Parse(name, text string, opts ...Option) (*ast.RawFile, error) {
	return ParseFile(source.NewFile(name, text), opts...)
}

// ParseFile parses an already loaded source file.
func ParseFile(file *source.File, opts ...Option) (*ast.RawFile, error) {
	o := buildOptions(opts)
	p := &parser{
		file:     file,
		src:      file.Text,
		maxDepth: o.maxDepth,
	}

	out := &ast.RawFile{Source: file}
	for {
		p.skipBlankLines()
		if p.eof() {
			break
		}
		par, err := p.parseParagraph("")
		if err != nil {
			return nil, err
		}
		out.Paragraphs = append(out.Paragraphs, par)
	}
	return out, nil
}

// enter records one level of nesting for the construct at opener.
func (p *parser) enter(opener source.Span) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.fail(ErrNestingTooDeep, opener, "more than %d levels", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseParagraph parses consecutive non-blank lines that begin with indent.
// The cursor must be at the start of a line.
func (p *parser) parseParagraph(indent string) (ast.RawParagraph, error) {
	var par ast.RawParagraph
	for !p.eof() && !p.lineBlankAt(p.pos) && p.indentedBy(indent) {
		part, err := p.parsePart(indent)
		if err != nil {
			return par, err
		}
		if len(par.Parts) == 0 {
			par.Loc = part.Loc
		} else {
			par.Loc = par.Loc.Union(part.Loc)
		}
		par.Parts = append(par.Parts, part)
	}
	return par, nil
}

// indentedBy reports whether the current line begins with indent.
func (p *parser) indentedBy(indent string) bool {
	return p.hasPrefix(indent)
}

// parsePart parses one line of a paragraph and leaves the cursor at the
// start of the following line.
func (p *parser) parsePart(indent string) (ast.RawPart, error) {
	p.pos += len(indent)

	var content []ast.Raw
	if p.startsCall(p.pos) {
		call, err := p.parseCall(indent, true, lineStop())
		if err != nil {
			return ast.RawPart{}, err
		}
		if endsWithTrailer(call) {
			return ast.CommandPart[ast.Raw](call, call.Loc), nil
		}
		if endsWithRemainder(call) || p.atLineEnd() {
			p.skipLineEnd()
			return ast.CommandPart[ast.Raw](call, call.Loc), nil
		}
		content = append(content, call)
	}

	rest, err := p.parseInline(lineStop())
	if err != nil {
		return ast.RawPart{}, err
	}
	content = append(content, rest...)
	if p.peek() == '\n' {
		p.pos++
	}

	loc := content[0].Span().Union(content[len(content)-1].Span())
	return ast.LinePart(content, loc), nil
}

func endsWithTrailer(call *ast.RawCall) bool {
	return len(call.Args) > 0 && call.Args[len(call.Args)-1].Kind == ast.ArgTrailer
}

func endsWithRemainder(call *ast.RawCall) bool {
	return len(call.Args) > 0 && call.Args[len(call.Args)-1].Kind == ast.ArgRemainder
}
