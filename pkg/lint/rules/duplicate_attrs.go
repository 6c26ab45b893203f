package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
)

// DuplicateAttrsID identifies the duplicate attribute lint.
const DuplicateAttrsID = "duplicate-attrs"

// DuplicateAttrs reports attribute names written more than once on one command.
type DuplicateAttrs struct {
	lint.BaseLint
	allow []string
}

// NewDuplicateAttrs creates a new duplicate-attrs lint.
func NewDuplicateAttrs() *DuplicateAttrs {
	return &DuplicateAttrs{
		BaseLint: lint.NewBaseLint(
			DuplicateAttrsID,
			"Attribute names should not repeat within one command",
			[]string{"attrs"},
		),
	}
}

// WithOptions returns a copy of the lint that ignores the names in "allow".
func (l *DuplicateAttrs) WithOptions(opts lint.Options) (lint.Lint, error) {
	out := *l
	out.allow = opts.StringSlice("allow", nil)
	return &out, nil
}

// Analyse emits one diagnostic per repeated occurrence, in written order,
// pointing back at the first occurrence of the same name.
func (l *DuplicateAttrs) Analyse(node ast.Content) []diag.Diagnostic {
	cmd, ok := lint.AsCommand(node)
	if !ok || cmd.Attrs == nil {
		return nil
	}

	var diags []diag.Diagnostic
	firsts := make(map[string]ast.Attribute, len(cmd.Attrs.Items))
	for _, attr := range cmd.Attrs.Items {
		first, seen := firsts[attr.Name]
		if !seen {
			firsts[attr.Name] = attr
			continue
		}
		if slices.Contains(l.allow, attr.Name) {
			continue
		}
		src := diag.NewSrc(cmd.Loc).
			Annotate(diag.NoteWarn(attr.Loc, fmt.Sprintf("found duplicate '%s' here", attr.Name))).
			Annotate(diag.NoteInfo(first.Loc, fmt.Sprintf("'%s' first defined here", first.Name)))
		diags = append(diags, lint.NewDiagnosticAt(l.ID(), src, "duplicate attributes").
			Help("remove multiple occurrences of the same attribute").
			Build())
	}
	return diags
}
