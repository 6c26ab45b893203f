package lint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
	"github.com/yaklabco/emblem/pkg/parser"
	"github.com/yaklabco/emblem/pkg/resolve"
)

// funcLint is a test lint backed by a function.
type funcLint struct {
	lint.BaseLint
	analyse func(node ast.Content) []diag.Diagnostic
}

func newFuncLint(id string, analyse func(node ast.Content) []diag.Diagnostic) *funcLint {
	return &funcLint{
		BaseLint: lint.NewBaseLint(id, "test lint "+id, []string{"test"}),
		analyse:  analyse,
	}
}

func (l *funcLint) Analyse(node ast.Content) []diag.Diagnostic {
	return l.analyse(node)
}

// disabledLint is off unless configured.
type disabledLint struct {
	lint.BaseLint
}

func (l *disabledLint) DefaultEnabled() bool { return false }

// optionLint records the options it was configured with.
type optionLint struct {
	lint.BaseLint
	names []string
}

func (l *optionLint) WithOptions(opts lint.Options) (lint.Lint, error) {
	out := *l
	out.names = opts.StringSlice("names", nil)
	return &out, nil
}

// everyWord flags every word.
func everyWord(id string) *funcLint {
	return newFuncLint(id, func(node ast.Content) []diag.Diagnostic {
		word, ok := node.(*ast.Word)
		if !ok {
			return nil
		}
		return []diag.Diagnostic{lint.NewDiagnosticAt("", diag.NewSrc(word.Span()), "word "+word.Text).Build()}
	})
}

func mustDocument(t *testing.T, text string) *ast.Document {
	t.Helper()
	raw, err := parser.Parse("test.em", text)
	require.NoError(t, err)
	doc, err := resolve.Resolve(raw)
	require.NoError(t, err)
	return doc
}

func TestBaseLint(t *testing.T) {
	t.Parallel()

	base := lint.NewBaseLint("some-lint", "does things", []string{"style"})
	require.Equal(t, "some-lint", base.ID())
	require.Equal(t, "does things", base.Description())
	require.True(t, base.DefaultEnabled())
	require.Equal(t, []string{"style"}, base.Tags())
	require.Nil(t, base.Analyse(&ast.Word{Text: "x"}))
}

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	word := &ast.Word{Text: "x", Loc: sourceSpan(3, 4)}
	d := lint.NewDiagnosticAt("some-lint", diag.NewSrc(word.Span()), "msg").Help("fix it").Build()

	require.Equal(t, "some-lint", d.Lint)
	require.Equal(t, diag.SevWarn, d.Severity)
	require.Equal(t, "msg", d.Message)
	require.True(t, d.HasSrc())
	require.Equal(t, word.Loc, d.Span())
	require.Equal(t, "fix it", d.Help)
}
