package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/emblem/pkg/source"
)

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

// peekAt returns the byte n positions ahead of the cursor, or 0 past the end.
func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) || p.pos+n < 0 {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *parser) hasPrefix(prefix string) bool {
	return strings.HasPrefix(p.src[p.pos:], prefix)
}

func (p *parser) span(start int) source.Span {
	return source.NewSpan(start, p.pos)
}

// atLineEnd reports whether the cursor is at a newline or the end of input.
func (p *parser) atLineEnd() bool {
	return p.eof() || p.peek() == '\n'
}

// lineBlankAt reports whether the line starting at offset holds only
// horizontal whitespace.
func (p *parser) lineBlankAt(offset int) bool {
	for i := offset; i < len(p.src); i++ {
		switch p.src[i] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// skipBlankLines moves the cursor past blank lines. The cursor must be at
// the start of a line.
func (p *parser) skipBlankLines() {
	for !p.eof() && p.lineBlankAt(p.pos) {
		idx := strings.IndexByte(p.src[p.pos:], '\n')
		if idx < 0 {
			p.pos = len(p.src)
			return
		}
		p.pos += idx + 1
	}
}

// indentAt returns the horizontal whitespace at the start of the line
// beginning at offset.
func (p *parser) indentAt(offset int) string {
	end := offset
	for end < len(p.src) && (p.src[end] == ' ' || p.src[end] == '\t') {
		end++
	}
	return p.src[offset:end]
}

// skipLineEnd consumes trailing horizontal whitespace and one newline.
func (p *parser) skipLineEnd() {
	for !p.eof() && isHorizontalSpace(p.peek()) {
		p.pos++
	}
	if p.peek() == '\n' {
		p.pos++
	}
}

// prevIsWordChar reports whether the rune before offset is a letter or digit.
func (p *parser) prevIsWordChar(offset int) bool {
	if offset <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(p.src[:offset])
	return isWordRune(r)
}

// nextIsWordChar reports whether the rune at offset is a letter or digit.
func (p *parser) nextIsWordChar(offset int) bool {
	if offset >= len(p.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.src[offset:])
	return isWordRune(r)
}

// spaceAt reports whether offset is past the end or holds whitespace.
func (p *parser) spaceAt(offset int) bool {
	if offset >= len(p.src) || offset < 0 {
		return true
	}
	return isSpace(p.src[offset])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}
