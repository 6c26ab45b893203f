package rules

import (
	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
)

// EmptyAttrsID identifies the empty attribute list lint.
const EmptyAttrsID = "empty-attrs"

// EmptyAttrs reports attribute lists written with no attributes.
type EmptyAttrs struct {
	lint.BaseLint
}

// NewEmptyAttrs creates a new empty-attrs lint.
func NewEmptyAttrs() *EmptyAttrs {
	return &EmptyAttrs{
		BaseLint: lint.NewBaseLint(
			EmptyAttrsID,
			"Attribute lists should not be empty",
			[]string{"attrs"},
		),
	}
}

// Analyse checks a command's attribute list.
func (l *EmptyAttrs) Analyse(node ast.Content) []diag.Diagnostic {
	cmd, ok := lint.AsCommand(node)
	if !ok || cmd.Attrs == nil || len(cmd.Attrs.Items) > 0 {
		return nil
	}

	src := diag.NewSrc(cmd.Loc).
		Annotate(diag.NoteWarn(cmd.Attrs.Loc, "empty attribute list here"))
	return []diag.Diagnostic{
		lint.NewDiagnosticAt(l.ID(), src, "empty attributes").
			Help("remove the brackets or add an attribute").
			Build(),
	}
}
