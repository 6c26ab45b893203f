package lint

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
)

// BaseLint provides a default implementation of the Lint interface.
// Embed this in lint implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseLint struct {
	id   string   // Unique identifier (e.g., "duplicate-attrs")
	desc string   // One-line description
	tags []string // Categorization tags
}

// NewBaseLint creates a BaseLint with the given properties.
func NewBaseLint(id, desc string, tags []string) BaseLint {
	return BaseLint{
		id:   id,
		desc: desc,
		tags: tags,
	}
}

// ID returns the unique identifier for this lint.
func (l *BaseLint) ID() string {
	return l.id
}

// Description returns a one-line description of what the lint checks.
func (l *BaseLint) Description() string {
	return l.desc
}

// DefaultEnabled returns whether the lint is enabled by default.
// Override this method to change the default.
func (l *BaseLint) DefaultEnabled() bool {
	return true
}

// Tags returns categorization tags for this lint.
func (l *BaseLint) Tags() []string {
	return l.tags
}

// Analyse must be overridden by concrete lint implementations.
// The default implementation returns no diagnostics.
func (l *BaseLint) Analyse(_ ast.Content) []diag.Diagnostic {
	return nil
}
