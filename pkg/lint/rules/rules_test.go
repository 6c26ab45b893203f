package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
	"github.com/yaklabco/emblem/pkg/lint/rules"
	"github.com/yaklabco/emblem/pkg/parser"
	"github.com/yaklabco/emblem/pkg/resolve"
	"github.com/yaklabco/emblem/pkg/source"
)

func mustDocument(t *testing.T, text string) *ast.Document {
	t.Helper()
	raw, err := parser.Parse("test.em", text)
	require.NoError(t, err)
	doc, err := resolve.Resolve(raw)
	require.NoError(t, err)
	return doc
}

// commandsOf returns the commands of doc in document order.
func commandsOf(t *testing.T, doc *ast.Document) []*ast.Command {
	t.Helper()
	var cmds []*ast.Command
	require.NoError(t, ast.Walk(doc, func(node ast.Content) error {
		if cmd, ok := node.(*ast.Command); ok {
			cmds = append(cmds, cmd)
		}
		return nil
	}))
	return cmds
}

// runLint runs a single lint over text through the engine.
func runLint(t *testing.T, l lint.Lint, cfg *config.Config, text string) ([]diag.Diagnostic, *ast.Document) {
	t.Helper()
	reg := lint.NewRegistry()
	reg.Register(l)
	doc := mustDocument(t, text)
	diags, err := lint.NewEngine(reg, cfg, lint.EngineOptions{}).Run(context.Background(), doc)
	require.NoError(t, err)
	return diags, doc
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rules.RegisterAll(reg)

	assert.Equal(t, []string{
		rules.DuplicateAttrsID,
		rules.EmptyAttrsID,
		rules.RedundantSugarID,
	}, reg.IDs())

	for _, l := range reg.Lints() {
		assert.NotEmpty(t, l.Description(), l.ID())
		assert.True(t, l.DefaultEnabled(), l.ID())
	}
}

func TestDefaultRegistryPopulated(t *testing.T) {
	t.Parallel()

	assert.True(t, lint.DefaultRegistry.Has(rules.DuplicateAttrsID))
	assert.True(t, lint.DefaultRegistry.Has(rules.EmptyAttrsID))
	assert.True(t, lint.DefaultRegistry.Has(rules.RedundantSugarID))
}

func TestDuplicateAttrs(t *testing.T) {
	t.Parallel()

	diags, doc := runLint(t, rules.NewDuplicateAttrs(), nil, ".cmd[a=1,a=2,b=3]\n")
	require.Len(t, diags, 1)

	cmds := commandsOf(t, doc)
	require.Len(t, cmds, 1)
	items := cmds[0].Attrs.Items

	d := diags[0]
	assert.Equal(t, rules.DuplicateAttrsID, d.Lint)
	assert.Equal(t, diag.SevWarn, d.Severity)
	assert.Equal(t, "duplicate attributes", d.Message)
	assert.Equal(t, "remove multiple occurrences of the same attribute", d.Help)
	require.NotNil(t, d.Src)
	assert.Equal(t, cmds[0].Loc, d.Src.Anchor)

	require.Len(t, d.Src.Notes, 2)
	assert.Equal(t, diag.Note{
		Span:     source.NewSpan(9, 12),
		Severity: diag.SevWarn,
		Message:  "found duplicate 'a' here",
	}, d.Src.Notes[0])
	assert.Equal(t, diag.Note{
		Span:     source.NewSpan(5, 8),
		Severity: diag.SevInfo,
		Message:  "'a' first defined here",
	}, d.Src.Notes[1])
	assert.Equal(t, items[1].Loc, d.Src.Notes[0].Span)
	assert.Equal(t, items[0].Loc, d.Src.Notes[1].Span)
}

func TestDuplicateAttrs_None(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"distinct", ".cmd[a=1,b=2]\n"},
		{"no attrs", ".cmd\n"},
		{"empty attrs", ".cmd[]\n"},
		{"plain text", "a a a\n"},
		{"separate commands", ".x[a] .y[a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags, _ := runLint(t, rules.NewDuplicateAttrs(), nil, tt.text)
			assert.Empty(t, diags)
		})
	}
}

func TestDuplicateAttrs_EveryRepeat(t *testing.T) {
	t.Parallel()

	diags, _ := runLint(t, rules.NewDuplicateAttrs(), nil, ".cmd[a,b,a,a]\n")
	require.Len(t, diags, 2)

	first := source.NewSpan(5, 6)
	for i, want := range []source.Span{source.NewSpan(9, 10), source.NewSpan(11, 12)} {
		require.Len(t, diags[i].Src.Notes, 2)
		assert.Equal(t, want, diags[i].Src.Notes[0].Span)
		assert.Equal(t, first, diags[i].Src.Notes[1].Span)
	}
}

func TestDuplicateAttrs_WrittenOrder(t *testing.T) {
	t.Parallel()

	diags, _ := runLint(t, rules.NewDuplicateAttrs(), nil, ".x[a=1, b=1, b=2, a=2]\n")
	require.Len(t, diags, 2)

	tests := []struct {
		dup   source.Span
		first source.Span
		name  string
	}{
		{source.NewSpan(13, 16), source.NewSpan(8, 11), "b"},
		{source.NewSpan(18, 21), source.NewSpan(3, 6), "a"},
	}
	for i, tt := range tests {
		require.Len(t, diags[i].Src.Notes, 2)
		assert.Equal(t, tt.dup, diags[i].Src.Notes[0].Span)
		assert.Equal(t, "found duplicate '"+tt.name+"' here", diags[i].Src.Notes[0].Message)
		assert.Equal(t, tt.first, diags[i].Src.Notes[1].Span)
	}
}

func TestDuplicateAttrs_Nested(t *testing.T) {
	t.Parallel()

	diags, doc := runLint(t, rules.NewDuplicateAttrs(), nil, ".outer[x,x]{.inner[y,y]}\n")
	require.Len(t, diags, 2)

	cmds := commandsOf(t, doc)
	require.Len(t, cmds, 2)
	assert.Equal(t, cmds[0].Loc, diags[0].Span())
	assert.Equal(t, cmds[1].Loc, diags[1].Span())
	assert.Equal(t, "found duplicate 'x' here", diags[0].Src.Notes[0].Message)
	assert.Equal(t, "found duplicate 'y' here", diags[1].Src.Notes[0].Message)
}

func TestDuplicateAttrs_Allow(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Lints[rules.DuplicateAttrsID] = config.LintConfig{
		Options: map[string]any{"allow": []any{"class"}},
	}

	diags, _ := runLint(t, rules.NewDuplicateAttrs(), cfg, ".cmd[class=a,class=b,id=x,id=y]\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "found duplicate 'id' here", diags[0].Src.Notes[0].Message)
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	diags, doc := runLint(t, rules.NewEmptyAttrs(), nil, ".cmd[]\n")
	require.Len(t, diags, 1)

	cmd := commandsOf(t, doc)[0]
	d := diags[0]
	assert.Equal(t, rules.EmptyAttrsID, d.Lint)
	assert.Equal(t, "empty attributes", d.Message)
	assert.Equal(t, cmd.Loc, d.Span())
	require.Len(t, d.Src.Notes, 1)
	assert.Equal(t, cmd.Attrs.Loc, d.Src.Notes[0].Span)
	assert.Equal(t, source.NewSpan(4, 6), d.Src.Notes[0].Span)
}

func TestEmptyAttrs_None(t *testing.T) {
	t.Parallel()

	for _, text := range []string{".cmd\n", ".cmd[x]\n", ".cmd{}\n", "plain\n"} {
		diags, _ := runLint(t, rules.NewEmptyAttrs(), nil, text)
		assert.Empty(t, diags, text)
	}
}

func TestRedundantSugar(t *testing.T) {
	t.Parallel()

	diags, _ := runLint(t, rules.NewRedundantSugar(), nil, "_a _b_ c_\n")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, rules.RedundantSugarID, d.Lint)
	assert.Equal(t, "redundant formatting", d.Message)
	assert.Equal(t, source.NewSpan(3, 6), d.Span())
	require.Len(t, d.Src.Notes, 2)
	assert.Equal(t, "italic applied again here", d.Src.Notes[0].Message)
	assert.Equal(t, "italic already applied here", d.Src.Notes[1].Message)
	assert.Equal(t, source.NewSpan(0, 9), d.Src.Notes[1].Span)
}

func TestRedundantSugar_ReportedOnce(t *testing.T) {
	t.Parallel()

	diags, _ := runLint(t, rules.NewRedundantSugar(), nil, "_a _b _c_ d_ e_\n")
	require.Len(t, diags, 2)
	assert.Equal(t, source.NewSpan(3, 12), diags[0].Span())
	assert.Equal(t, source.NewSpan(6, 9), diags[1].Span())
}

func TestRedundantSugar_None(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"different kinds", "_a **b** c_\n"},
		{"siblings", "_a_ _b_\n"},
		{"inside command", "_a .cmd{_b_} c_\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags, _ := runLint(t, rules.NewRedundantSugar(), nil, tt.text)
			assert.Empty(t, diags)
		})
	}
}

func TestRedundantSugar_ThroughOtherKinds(t *testing.T) {
	t.Parallel()

	diags, _ := runLint(t, rules.NewRedundantSugar(), nil, "**a _b **c** d_ e**\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "bold applied again here", diags[0].Src.Notes[0].Message)
}
