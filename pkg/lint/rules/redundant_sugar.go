package rules

import (
	"fmt"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
)

// RedundantSugarID identifies the redundant formatting lint.
const RedundantSugarID = "redundant-sugar"

// RedundantSugar reports formatting nested inside formatting of the same kind.
//
// Only the closest enclosing run reports a nested one, so each redundant run
// is reported once. Commands start a fresh scope.
type RedundantSugar struct {
	lint.BaseLint
}

// NewRedundantSugar creates a new redundant-sugar lint.
func NewRedundantSugar() *RedundantSugar {
	return &RedundantSugar{
		BaseLint: lint.NewBaseLint(
			RedundantSugarID,
			"Formatting should not be nested inside the same formatting",
			[]string{"sugar"},
		),
	}
}

// Analyse checks the content of a sugar node.
func (l *RedundantSugar) Analyse(node ast.Content) []diag.Diagnostic {
	outer, ok := lint.AsSugar(node)
	if !ok {
		return nil
	}

	var diags []diag.Diagnostic
	_ = ast.WalkContent(outer.Content, func(child ast.Content) error {
		switch n := child.(type) {
		case *ast.Command:
			return ast.SkipChildren
		case *ast.Sugar:
			if n.Kind != outer.Kind {
				return nil
			}
			src := diag.NewSrc(n.Loc).
				Annotate(diag.NoteWarn(n.Loc, fmt.Sprintf("%s applied again here", n.Kind))).
				Annotate(diag.NoteInfo(outer.Loc, fmt.Sprintf("%s already applied here", outer.Kind)))
			diags = append(diags, lint.NewDiagnosticAt(l.ID(), src, "redundant formatting").
				Help("remove the inner formatting").
				Build())
			return ast.SkipChildren
		}
		return nil
	})
	return diags
}
