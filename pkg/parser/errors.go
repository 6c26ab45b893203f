package parser

import (
	"errors"
	"fmt"

	"github.com/yaklabco/emblem/pkg/source"
)

// Parse failure kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrUnterminatedCall indicates a call whose argument group is never closed.
	ErrUnterminatedCall = errors.New("unterminated call")

	// ErrUnterminatedSugar indicates inline formatting that is never closed.
	ErrUnterminatedSugar = errors.New("unterminated formatting")

	// ErrUnbalancedComment indicates a comment opener without a closer or
	// a closer without an opener.
	ErrUnbalancedComment = errors.New("unbalanced comment")

	// ErrMisplacedTrailer indicates trailer arguments on a call that does
	// not start its line.
	ErrMisplacedTrailer = errors.New("misplaced trailer arguments")

	// ErrUnexpectedInput indicates text the grammar cannot classify.
	ErrUnexpectedInput = errors.New("unexpected input")

	// ErrNestingTooDeep indicates input nested beyond the configured limit.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// Error is a fatal parse failure at a location in one file.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error

	// File is the file being parsed.
	File *source.File

	// Span locates the failure.
	Span source.Span

	// Msg describes the failure.
	Msg string
}

func (e *Error) Error() string {
	rng := e.File.Range(e.Span)
	return fmt.Sprintf("%s:%s: %s, found at %s", e.File.Name, rng.Start, e.Summary(), rng)
}

// Unwrap returns the failure kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Summary returns the failure without its location.
func (e *Error) Summary() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Location returns the failing span.
func (e *Error) Location() (*source.File, source.Span) {
	return e.File, e.Span
}

func (p *parser) fail(kind error, span source.Span, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		File: p.file,
		Span: span,
		Msg:  fmt.Sprintf(format, args...),
	}
}
