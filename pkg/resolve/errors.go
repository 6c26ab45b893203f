package resolve

import (
	"errors"
	"fmt"

	"github.com/yaklabco/emblem/pkg/source"
)

// Resolution failure kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrArgumentOrder indicates call arguments written out of order.
	ErrArgumentOrder = errors.New("arguments out of order")

	// ErrDashLength indicates a run of more than three dashes.
	ErrDashLength = errors.New("dash too long")

	// ErrGlueLength indicates a run of more than two tildes.
	ErrGlueLength = errors.New("glue too long")

	// ErrBadAttribute indicates an attribute list item that is empty or unnamed.
	ErrBadAttribute = errors.New("malformed attribute")

	// ErrMalformedSugar indicates inline formatting that does not wrap
	// exactly one content group.
	ErrMalformedSugar = errors.New("malformed formatting")
)

// Error is a fatal resolution failure at a location in one file.
type Error struct {
	Kind error
	File *source.File
	Span source.Span
	Msg  string
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

func (r *resolver) fail(kind error, span source.Span, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		File: r.file,
		Span: span,
		Msg:  fmt.Sprintf(format, args...),
	}
}
