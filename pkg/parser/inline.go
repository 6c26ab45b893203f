package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

// sugarDelims are tried in order; longer delimiters come first.
var sugarDelims = []string{"**", "==", "_", "`", "="}

// stop describes where an inline run ends.
type stop struct {
	// closer matches the construct's closing delimiter. Nil for line-level runs.
	closer func(p *parser) bool

	// outer is the enclosing construct, whose closers also end this run.
	outer *stop

	// multiline treats newlines as whitespace instead of as the end of the run.
	multiline bool
}

func lineStop() *stop {
	return &stop{}
}

func (s *stop) done(p *parser) bool {
	if p.peek() == '\n' && !s.multiline {
		return true
	}
	for cur := s; cur != nil; cur = cur.outer {
		if cur.closer != nil && cur.closer(p) {
			return true
		}
	}
	return false
}

// parseInline scans inline content until st is done, a blank line, or the
// end of input. The caller checks which of these ended the run.
func (p *parser) parseInline(st *stop) ([]ast.Raw, error) {
	var out []ast.Raw
	for !p.eof() && !st.done(p) {
		if p.peek() == '\n' && p.lineBlankAt(p.pos+1) {
			break
		}
		node, err := p.parseInlineNode(st)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (p *parser) parseInlineNode(st *stop) (ast.Raw, error) {
	start := p.pos
	c := p.peek()

	switch {
	case c == '\\':
		return p.parseEscape(), nil
	case p.hasPrefix("/*"):
		return p.parseMultiLineComment()
	case p.hasPrefix("*/"):
		return nil, p.fail(ErrUnbalancedComment, source.NewSpan(start, start+2), "comment closer without an opener")
	case p.hasPrefix("//"):
		return p.parseComment(), nil
	case p.startsCall(start):
		return p.parseCall("", false, st)
	case p.sugarOpenerAt(start) != "":
		return p.parseSugar(p.sugarOpenerAt(start), st)
	case p.verbatimAt(start):
		return p.parseVerbatim(), nil
	case c == '-' || c == '~':
		return p.parseRun(c), nil
	case c == '{':
		return nil, p.fail(ErrUnexpectedInput, source.NewSpan(start, start+1), "'{' outside of call arguments")
	case c == '}':
		return nil, p.fail(ErrUnexpectedInput, source.NewSpan(start, start+1), "unmatched '}'")
	case isSpace(c):
		return p.parseWhitespace(st), nil
	default:
		return p.parseWord(st), nil
	}
}

// startsCall reports whether a call begins at offset.
func (p *parser) startsCall(offset int) bool {
	return offset+1 < len(p.src) &&
		p.src[offset] == '.' &&
		isNameStart(p.src[offset+1]) &&
		!p.prevIsWordChar(offset)
}

// sugarOpenerAt returns the sugar delimiter opening at offset, or "".
func (p *parser) sugarOpenerAt(offset int) string {
	if p.prevIsWordChar(offset) {
		return ""
	}
	rest := p.src[offset:]
	for _, delim := range sugarDelims {
		if !strings.HasPrefix(rest, delim) {
			continue
		}
		next := offset + len(delim)
		if p.spaceAt(next) || p.src[next] == delim[0] {
			continue
		}
		return delim
	}
	return ""
}

// atSugarCloser reports whether delim closes at offset.
func (p *parser) atSugarCloser(offset int, delim string) bool {
	return offset > 0 &&
		strings.HasPrefix(p.src[offset:], delim) &&
		!p.spaceAt(offset-1) &&
		!p.nextIsWordChar(offset+len(delim))
}

// verbatimAt reports whether a verbatim run opens at offset. The closing
// delimiter must appear later on the same line.
func (p *parser) verbatimAt(offset int) bool {
	if p.src[offset] != '!' || p.prevIsWordChar(offset) || p.spaceAt(offset+1) {
		return false
	}
	rest := p.src[offset+1:]
	if eol := strings.IndexByte(rest, '\n'); eol >= 0 {
		rest = rest[:eol]
	}
	return strings.IndexByte(rest, '!') > 0
}

// startsToken reports whether anything other than plain word text begins
// at offset.
func (p *parser) startsToken(offset int) bool {
	c := p.src[offset]
	switch c {
	case ' ', '\t', '\r', '\n', '\\', '{', '}', '-', '~':
		return true
	case '/':
		return offset+1 < len(p.src) && (p.src[offset+1] == '*' || p.src[offset+1] == '/')
	case '*':
		if offset+1 < len(p.src) && p.src[offset+1] == '/' {
			return true
		}
	}
	return p.startsCall(offset) || p.sugarOpenerAt(offset) != "" || p.verbatimAt(offset)
}

func (p *parser) parseEscape() ast.Raw {
	start := p.pos
	p.pos++
	if p.atLineEnd() {
		return &ast.RawWord{Text: "\\", Loc: p.span(start)}
	}
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return &ast.RawWord{Text: p.src[start+1 : p.pos], Loc: p.span(start)}
}

func (p *parser) parseComment() ast.Raw {
	start := p.pos
	p.pos += 2
	for !p.atLineEnd() {
		p.pos++
	}
	return &ast.RawComment{Text: p.src[start+2 : p.pos], Loc: p.span(start)}
}

func (p *parser) parseVerbatim() ast.Raw {
	start := p.pos
	end := start + 1 + strings.IndexByte(p.src[start+1:], '!')
	p.pos = end + 1
	return &ast.RawVerbatim{Text: p.src[start+1 : end], Loc: p.span(start)}
}

// parseRun captures a run of dashes or tildes as a single word.
func (p *parser) parseRun(c byte) ast.Raw {
	start := p.pos
	for p.peek() == c {
		p.pos++
	}
	return &ast.RawWord{Text: p.src[start:p.pos], Loc: p.span(start)}
}

func (p *parser) parseWhitespace(st *stop) ast.Raw {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isHorizontalSpace(c) {
			p.pos++
			continue
		}
		if c == '\n' && st.multiline && !p.lineBlankAt(p.pos+1) {
			p.pos++
			continue
		}
		break
	}
	return &ast.RawWhitespace{Text: p.src[start:p.pos], Loc: p.span(start)}
}

func (p *parser) parseWord(st *stop) ast.Raw {
	start := p.pos
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	for !p.eof() && !st.done(p) && !p.startsToken(p.pos) {
		_, size = utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
	}
	return &ast.RawWord{Text: p.src[start:p.pos], Loc: p.span(start)}
}

func (p *parser) parseSugar(delim string, outer *stop) (ast.Raw, error) {
	start := p.pos
	opener := source.NewSpan(start, start+len(delim))
	if err := p.enter(opener); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos += len(delim)
	st := &stop{
		closer:    func(p *parser) bool { return p.atSugarCloser(p.pos, delim) },
		outer:     outer,
		multiline: true,
	}
	content, err := p.parseInline(st)
	if err != nil {
		return nil, err
	}
	if !p.atSugarCloser(p.pos, delim) {
		return nil, p.fail(ErrUnterminatedSugar, opener, "'%s' is never closed", delim)
	}
	inner := source.NewSpan(opener.End, p.pos)
	p.pos += len(delim)

	return &ast.RawCall{
		Name:    delim,
		NameLoc: opener,
		Args: []*ast.RawArg{{
			Kind:    ast.ArgInline,
			Content: content,
			Loc:     inner,
		}},
		Loc: p.span(start),
	}, nil
}
