package lint

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
)

// EngineOptions controls how the engine schedules lints.
type EngineOptions struct {
	// Concurrent runs each lint over the document in its own goroutine.
	Concurrent bool

	// Jobs bounds concurrent lints; 0 means GOMAXPROCS.
	Jobs int
}

// Engine runs lints over resolved documents.
type Engine struct {
	// Registry holds all available lints.
	Registry *Registry

	// Config selects and configures lints (may be nil for defaults).
	Config *config.Config

	// Options controls scheduling.
	Options EngineOptions
}

// NewEngine creates a new Engine with the given registry, configuration and options.
func NewEngine(registry *Registry, cfg *config.Config, opts EngineOptions) *Engine {
	return &Engine{
		Registry: registry,
		Config:   cfg,
		Options:  opts,
	}
}

// finding is a diagnostic tagged with its sort key.
type finding struct {
	node int
	lint string
	seq  int
	diag diag.Diagnostic
}

// Run lints doc and returns its diagnostics ordered by the pre-order index
// of the node they were found on, then lint ID, then emission order. The
// order does not depend on registration order or on scheduling.
func (e *Engine) Run(ctx context.Context, doc *ast.Document) ([]diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	resolved, err := ResolveLints(e.Registry, e.Config)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, nil
	}

	cache := NewNodeCache(doc)

	var findings []finding
	if e.Options.Concurrent && len(resolved) > 1 {
		findings, err = e.runConcurrent(ctx, cache, resolved)
		if err != nil {
			return nil, err
		}
	} else {
		for i := range resolved {
			findings = append(findings, analyse(cache, &resolved[i])...)
		}
	}

	slices.SortFunc(findings, func(a, b finding) int {
		return cmp.Or(
			cmp.Compare(a.node, b.node),
			cmp.Compare(a.lint, b.lint),
			cmp.Compare(a.seq, b.seq),
		)
	})

	out := make([]diag.Diagnostic, len(findings))
	for i := range findings {
		out[i] = findings[i].diag
	}
	return out, nil
}

func (e *Engine) runConcurrent(ctx context.Context, cache *NodeCache, resolved []ResolvedLint) ([]finding, error) {
	jobs := e.Options.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	perLint := make([][]finding, len(resolved))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i := range resolved {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("linting cancelled: %w", err)
			}
			perLint[i] = analyse(cache, &resolved[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var findings []finding
	for _, f := range perLint {
		findings = append(findings, f...)
	}
	return findings, nil
}

// analyse runs one lint over every cached node.
func analyse(cache *NodeCache, rl *ResolvedLint) []finding {
	id := rl.Lint.ID()
	var out []finding
	seq := 0
	for idx, node := range cache.Nodes() {
		for _, d := range rl.Lint.Analyse(node) {
			if d.Lint == "" {
				d.Lint = id
			}
			if rl.Severity != nil {
				d.Severity = *rl.Severity
			}
			out = append(out, finding{node: idx, lint: id, seq: seq, diag: d})
			seq++
		}
	}
	return out
}
