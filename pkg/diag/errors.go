package diag

import (
	"errors"

	"github.com/yaklabco/emblem/pkg/source"
)

// Located is implemented by fatal errors that point at source text.
type Located interface {
	error

	// Location returns the file and span the error refers to.
	Location() (*source.File, source.Span)

	// Summary returns the error without its location.
	Summary() string
}

// FromError converts a located fatal error into an error-severity
// diagnostic. It returns false if err carries no location.
func FromError(err error) (Diagnostic, *source.File, bool) {
	var located Located
	if !errors.As(err, &located) {
		return Diagnostic{}, nil, false
	}
	file, span := located.Location()
	return New(SevError, located.Summary()).Src(NewSrc(span)).Build(), file, true
}
