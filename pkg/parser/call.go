package parser

import (
	"strings"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

// parseCall parses a call and its arguments. Block calls start their line
// at the given indent and may take trailer arguments.
func (p *parser) parseCall(indent string, block bool, outer *stop) (*ast.RawCall, error) {
	start := p.pos
	p.pos++

	nameStart := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.pos++
	}
	for p.src[p.pos-1] == '-' {
		p.pos--
	}
	call := &ast.RawCall{
		Name:    p.src[nameStart:p.pos],
		NameLoc: p.span(start),
	}
	for p.peek() == '+' {
		call.Pluses++
		p.pos++
	}

	if err := p.enter(call.NameLoc); err != nil {
		return nil, err
	}
	defer p.leave()

	end := p.pos
args:
	for {
		switch {
		case p.peek() == '[':
			arg, err := p.parseAttrArg(call)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			end = p.pos

		case p.peek() == '{':
			arg, err := p.parseInlineArg(call)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			end = p.pos

		case p.hasPrefix("::") && p.lineBlankAt(p.pos+2):
			if !block {
				return nil, p.fail(ErrMisplacedTrailer, source.NewSpan(p.pos, p.pos+2),
					"'.%s' does not start its line", call.Name)
			}
			trailers, err := p.parseTrailers(call, indent)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, trailers...)
			end = trailers[len(trailers)-1].Loc.End
			break args

		case p.peek() == ':' && p.spaceAt(p.pos+1):
			arg, err := p.parseRemainder(outer)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			end = p.pos
			break args

		default:
			break args
		}
	}

	call.Loc = source.NewSpan(start, end)
	return call, nil
}

func (p *parser) parseAttrArg(call *ast.RawCall) (*ast.RawArg, error) {
	open := p.pos
	p.pos++
	idx := strings.IndexAny(p.src[p.pos:], "]\n")
	if idx < 0 || p.src[p.pos+idx] == '\n' {
		return nil, p.fail(ErrUnterminatedCall, source.NewSpan(open, open+1),
			"attributes of '.%s' are never closed", call.Name)
	}
	text := source.NewSpan(p.pos, p.pos+idx)
	p.pos += idx + 1
	return &ast.RawArg{
		Kind:    ast.ArgAttrs,
		Text:    p.file.Slice(text),
		TextLoc: text,
		Loc:     p.span(open),
	}, nil
}

func (p *parser) parseInlineArg(call *ast.RawCall) (*ast.RawArg, error) {
	open := p.pos
	p.pos++
	st := &stop{
		closer:    func(p *parser) bool { return p.peek() == '}' },
		multiline: true,
	}
	content, err := p.parseInline(st)
	if err != nil {
		return nil, err
	}
	if p.peek() != '}' {
		return nil, p.fail(ErrUnterminatedCall, source.NewSpan(open, open+1),
			"'{' of '.%s' is never closed", call.Name)
	}
	p.pos++
	return &ast.RawArg{
		Kind:    ast.ArgInline,
		Content: content,
		Loc:     p.span(open),
	}, nil
}

// parseRemainder parses everything after a colon up to the end of the line
// or the closer of an enclosing construct.
func (p *parser) parseRemainder(outer *stop) (*ast.RawArg, error) {
	colon := p.pos
	p.pos++
	for p.peek() == ' ' || p.peek() == '\t' {
		p.pos++
	}
	content, err := p.parseInline(&stop{outer: outer})
	if err != nil {
		return nil, err
	}
	return &ast.RawArg{
		Kind:    ast.ArgRemainder,
		Content: content,
		Loc:     p.span(colon),
	}, nil
}

// parseTrailers parses one or more indented blocks introduced by "::".
// The cursor is left at the start of the line after the last block.
func (p *parser) parseTrailers(call *ast.RawCall, indent string) ([]*ast.RawArg, error) {
	var args []*ast.RawArg
	for {
		sep := source.NewSpan(p.pos, p.pos+2)
		p.pos += 2
		p.skipLineEnd()

		body := p.indentAt(p.pos)
		if p.eof() || p.lineBlankAt(p.pos) || len(body) <= len(indent) || !strings.HasPrefix(body, indent) {
			return nil, p.fail(ErrUnterminatedCall, sep, "trailer of '.%s' has no indented body", call.Name)
		}

		par, err := p.parseParagraph(body)
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.RawArg{
			Kind:    ast.ArgTrailer,
			Trailer: &par,
			Loc:     sep.Union(par.Loc),
		})

		if p.eof() || !p.hasPrefix(indent) {
			return args, nil
		}
		next := p.pos + len(indent)
		if !strings.HasPrefix(p.src[next:], "::") || !p.lineBlankAt(next+2) {
			return args, nil
		}
		p.pos = next
	}
}
