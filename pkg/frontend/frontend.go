// Package frontend is the single entry point to the emblem pipeline:
// source text is parsed, resolved, linted and optionally rendered.
//
// A fatal parse or resolution error aborts the file and is returned alone,
// never together with a tree. Lint diagnostics are advisory and come back
// with the tree.
package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/html"
	"github.com/yaklabco/emblem/pkg/lint"
	"github.com/yaklabco/emblem/pkg/parser"
	"github.com/yaklabco/emblem/pkg/resolve"
	"github.com/yaklabco/emblem/pkg/source"

	// Built-in lints register with lint.DefaultRegistry.
	_ "github.com/yaklabco/emblem/pkg/lint/rules"
)

// Parse parses and resolves text named name.
func Parse(name, text string, opts ...parser.Option) (*ast.Document, error) {
	return ParseFile(source.NewFile(name, text), opts...)
}

// ParseFile parses and resolves an already loaded source file.
func ParseFile(file *source.File, opts ...parser.Option) (*ast.Document, error) {
	raw, err := parser.ParseFile(file, opts...)
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(raw)
}

// Options controls Compile.
type Options struct {
	// Config selects lints and the nesting limit (may be nil for defaults).
	Config *config.Config

	// Registry supplies lints; nil means lint.DefaultRegistry.
	Registry *lint.Registry

	// Lint controls lint scheduling.
	Lint lint.EngineOptions

	// NoLint skips linting.
	NoLint bool

	// Render renders the document to HTML.
	Render bool
}

// Result is the output of a successful compile.
type Result struct {
	// Document is the resolved tree.
	Document *ast.Document

	// Diagnostics are the lint findings in document order.
	Diagnostics []diag.Diagnostic

	// HTML is the rendering, set when Options.Render is true.
	HTML string
}

// File returns the source file the result was compiled from.
func (r *Result) File() *source.File {
	if r == nil || r.Document == nil {
		return nil
	}
	return r.Document.Source
}

// Counts tallies the diagnostics by severity.
func (r *Result) Counts() diag.Counts {
	if r == nil {
		return diag.Counts{}
	}
	return diag.Count(r.Diagnostics)
}

// Compile runs the whole pipeline over text named name.
func Compile(ctx context.Context, name, text string, opts Options) (*Result, error) {
	return NewCompiler(opts).Compile(ctx, name, text)
}

// IsFatal reports whether err is a parse or resolution error located in
// source text, as opposed to an I/O or cancellation failure.
func IsFatal(err error) bool {
	var located diag.Located
	return errors.As(err, &located)
}

// Compiler runs the pipeline with fixed options. It is safe for concurrent
// use; each call works on its own file.
type Compiler struct {
	opts   Options
	engine *lint.Engine
}

// NewCompiler creates a compiler with the given options.
func NewCompiler(opts Options) *Compiler {
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}
	return &Compiler{
		opts:   opts,
		engine: lint.NewEngine(registry, opts.Config, opts.Lint),
	}
}

// Compile runs the pipeline over text named name.
func (c *Compiler) Compile(ctx context.Context, name, text string) (*Result, error) {
	return c.CompileSource(ctx, source.NewFile(name, text))
}

// CompileSource runs the pipeline over an already loaded source file.
func (c *Compiler) CompileSource(ctx context.Context, file *source.File) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", file.Name, err)
	}

	doc, err := ParseFile(file, parser.WithMaxDepth(c.maxDepth()))
	if err != nil {
		return nil, err
	}

	result := &Result{Document: doc}
	if !c.opts.NoLint {
		result.Diagnostics, err = c.engine.Run(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", file.Name, err)
		}
	}
	if c.opts.Render {
		result.HTML = html.Render(doc)
	}
	return result, nil
}

func (c *Compiler) maxDepth() int {
	if c.opts.Config != nil && c.opts.Config.MaxDepth > 0 {
		return c.opts.Config.MaxDepth
	}
	return parser.DefaultMaxDepth
}
