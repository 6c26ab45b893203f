// Package lint provides the lint engine, registry and lint interface for emblem.
//
// A lint inspects one node of a resolved document at a time and returns
// independent advisory diagnostics. The engine visits every node in
// pre-order, runs every enabled lint on it and merges the findings in a
// deterministic order.
package lint

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
)

// Lint defines the interface that all lints must implement.
type Lint interface {
	// ID returns the unique identifier for this lint (e.g., "duplicate-attrs").
	ID() string

	// Description returns a one-line description of what the lint checks.
	Description() string

	// DefaultEnabled returns whether the lint runs when not configured.
	DefaultEnabled() bool

	// Tags returns categorization tags for this lint.
	Tags() []string

	// Analyse inspects a single node and returns its findings.
	//
	// Lints must:
	//   - Look only at node and its descendants.
	//   - Not retain or mutate node.
	//   - Be safe for concurrent use.
	Analyse(node ast.Content) []diag.Diagnostic
}

// Configurable is implemented by lints that accept options from the
// lints.<id>.options configuration table.
type Configurable interface {
	Lint

	// WithOptions returns a copy of the lint configured by opts.
	WithOptions(opts Options) (Lint, error)
}
