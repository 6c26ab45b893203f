package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/parser"
	"github.com/yaklabco/emblem/pkg/source"
)

func mustParse(t *testing.T, text string) *ast.RawFile {
	t.Helper()
	file, err := parser.Parse("test.em", text)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

// describe renders raw nodes as compact strings for comparison.
func describe(nodes []ast.Raw) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.(type) {
		case *ast.RawWord:
			out = append(out, "w:"+n.Text)
		case *ast.RawWhitespace:
			out = append(out, "_")
		case *ast.RawCall:
			out = append(out, "call:"+n.Name)
		case *ast.RawComment:
			out = append(out, "//"+n.Text)
		case *ast.RawMultiLineComment:
			out = append(out, "/**/")
		case *ast.RawVerbatim:
			out = append(out, "!"+n.Text)
		}
	}
	return out
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "\n", "  \n\t\n"} {
		file := mustParse(t, text)
		assert.Empty(t, file.Paragraphs, "input %q", text)
	}
}

func TestParse_Paragraphs(t *testing.T) {
	file := mustParse(t, "first line\nsecond line\n\n\nthird\n")

	require.Len(t, file.Paragraphs, 2)
	assert.Len(t, file.Paragraphs[0].Parts, 2)
	assert.Len(t, file.Paragraphs[1].Parts, 1)

	first := file.Paragraphs[0].Parts[0]
	assert.Equal(t, ast.PartLine, first.Kind)
	assert.Equal(t, []string{"w:first", "_", "w:line"}, describe(first.Line))
	assert.Equal(t, source.NewSpan(0, 10), first.Loc)
	assert.Equal(t, source.NewSpan(0, 22), file.Paragraphs[0].Loc)
}

func TestParse_CommandPart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []ast.ArgKind
	}{
		{name: "bare", input: ".toc", kinds: nil},
		{name: "inline", input: ".emph{word}", kinds: []ast.ArgKind{ast.ArgInline}},
		{name: "attrs and inline", input: ".img[src=a.png]{alt}", kinds: []ast.ArgKind{ast.ArgAttrs, ast.ArgInline}},
		{name: "remainder", input: ".h1: A title", kinds: []ast.ArgKind{ast.ArgRemainder}},
		{name: "empty remainder", input: ".h1:", kinds: []ast.ArgKind{ast.ArgRemainder}},
		{name: "multiple inline", input: ".if{a}{b}{c}", kinds: []ast.ArgKind{ast.ArgInline, ast.ArgInline, ast.ArgInline}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.input)
			require.Len(t, file.Paragraphs, 1)
			require.Len(t, file.Paragraphs[0].Parts, 1)

			part := file.Paragraphs[0].Parts[0]
			require.Equal(t, ast.PartCommand, part.Kind)
			call, ok := part.Command.(*ast.RawCall)
			require.True(t, ok)

			var kinds []ast.ArgKind
			for _, arg := range call.Args {
				kinds = append(kinds, arg.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, source.NewSpan(0, len(tt.input)), call.Loc)
		})
	}
}

func TestParse_CallInLine(t *testing.T) {
	file := mustParse(t, "see .ref{intro} now")
	part := file.Paragraphs[0].Parts[0]

	assert.Equal(t, ast.PartLine, part.Kind)
	assert.Equal(t, []string{"w:see", "_", "call:ref", "_", "w:now"}, describe(part.Line))
}

func TestParse_CallFollowedByText(t *testing.T) {
	file := mustParse(t, ".ref{intro} explains it")
	part := file.Paragraphs[0].Parts[0]

	assert.Equal(t, ast.PartLine, part.Kind)
	assert.Equal(t, "call:ref", describe(part.Line)[0])
}

func TestParse_CallNames(t *testing.T) {
	tests := []struct {
		input  string
		name   string
		pluses int
	}{
		{input: ".foo", name: "foo"},
		{input: ".foo-bar_2", name: "foo-bar_2"},
		{input: ".foo++", name: "foo", pluses: 2},
		{input: ".x+", name: "x", pluses: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input)
			call := file.Paragraphs[0].Parts[0].Command.(*ast.RawCall)
			assert.Equal(t, tt.name, call.Name)
			assert.Equal(t, tt.pluses, call.Pluses)
		})
	}
}

func TestParse_DotInsideWord(t *testing.T) {
	file := mustParse(t, "e.g.x and 3.14")
	assert.Equal(t, []string{"w:e.g.x", "_", "w:and", "_", "w:3.14"},
		describe(file.Paragraphs[0].Parts[0].Line))
}

func TestParse_Attrs(t *testing.T) {
	file := mustParse(t, ".img[src=a.png, alt]")
	call := file.Paragraphs[0].Parts[0].Command.(*ast.RawCall)

	require.Len(t, call.Args, 1)
	arg := call.Args[0]
	assert.Equal(t, "src=a.png, alt", arg.Text)
	assert.Equal(t, source.NewSpan(5, 19), arg.TextLoc)
	assert.Equal(t, source.NewSpan(4, 20), arg.Loc)
}

func TestParse_Remainder(t *testing.T) {
	file := mustParse(t, ".h1: A title\nnext")
	require.Len(t, file.Paragraphs[0].Parts, 2)

	call := file.Paragraphs[0].Parts[0].Command.(*ast.RawCall)
	require.Len(t, call.Args, 1)
	assert.Equal(t, []string{"w:A", "_", "w:title"}, describe(call.Args[0].Content))
	assert.Equal(t, ast.PartLine, file.Paragraphs[0].Parts[1].Kind)
}

func TestParse_RemainderInsideGroup(t *testing.T) {
	file := mustParse(t, "x .a{.b: inner} y")
	line := file.Paragraphs[0].Parts[0].Line
	require.Equal(t, []string{"w:x", "_", "call:a", "_", "w:y"}, describe(line))

	outer := line[2].(*ast.RawCall)
	inner := outer.Args[0].Content[0].(*ast.RawCall)
	require.Len(t, inner.Args, 1)
	assert.Equal(t, ast.ArgRemainder, inner.Args[0].Kind)
	assert.Equal(t, []string{"w:inner"}, describe(inner.Args[0].Content))
}

func TestParse_Trailer(t *testing.T) {
	file := mustParse(t, ".quote::\n\tline one\n\tline two\nafter\n")
	require.Len(t, file.Paragraphs, 1)
	parts := file.Paragraphs[0].Parts
	require.Len(t, parts, 2)

	require.Equal(t, ast.PartCommand, parts[0].Kind)
	call := parts[0].Command.(*ast.RawCall)
	require.Len(t, call.Args, 1)
	require.Equal(t, ast.ArgTrailer, call.Args[0].Kind)

	body := call.Args[0].Trailer
	require.Len(t, body.Parts, 2)
	assert.Equal(t, []string{"w:line", "_", "w:one"}, describe(body.Parts[0].Line))
	assert.Equal(t, []string{"w:after"}, describe(parts[1].Line))
}

func TestParse_MultipleTrailers(t *testing.T) {
	file := mustParse(t, ".if{cond}::\n  yes\n::\n  no\n")
	call := file.Paragraphs[0].Parts[0].Command.(*ast.RawCall)

	require.Len(t, call.Args, 3)
	assert.Equal(t, ast.ArgInline, call.Args[0].Kind)
	assert.Equal(t, ast.ArgTrailer, call.Args[1].Kind)
	assert.Equal(t, ast.ArgTrailer, call.Args[2].Kind)
	assert.Equal(t, []string{"w:no"}, describe(call.Args[2].Trailer.Parts[0].Line))
}

func TestParse_NestedTrailers(t *testing.T) {
	file := mustParse(t, ".outer::\n\t.inner::\n\t\tdeep\n\tshallow\n")
	outer := file.Paragraphs[0].Parts[0].Command.(*ast.RawCall)
	body := outer.Args[0].Trailer
	require.Len(t, body.Parts, 2)

	inner := body.Parts[0].Command.(*ast.RawCall)
	assert.Equal(t, "inner", inner.Name)
	assert.Equal(t, []string{"w:deep"}, describe(inner.Args[0].Trailer.Parts[0].Line))
	assert.Equal(t, []string{"w:shallow"}, describe(body.Parts[1].Line))
}

func TestParse_BlankLineEndsTrailer(t *testing.T) {
	file := mustParse(t, ".note::\n\tbody\n\n\tindented text\n")
	require.Len(t, file.Paragraphs, 2)
	assert.Equal(t, []string{"_", "w:indented", "_", "w:text"}, describe(file.Paragraphs[1].Parts[0].Line))
}

func TestParse_Sugar(t *testing.T) {
	tests := []struct {
		input string
		delim string
	}{
		{input: "**bold**", delim: "**"},
		{input: "_italic_", delim: "_"},
		{input: "`mono`", delim: "`"},
		{input: "=small=", delim: "="},
		{input: "==alt==", delim: "=="},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input)
			line := file.Paragraphs[0].Parts[0].Line
			require.Len(t, line, 1)
			call, ok := line[0].(*ast.RawCall)
			require.True(t, ok)
			assert.Equal(t, tt.delim, call.Name)
			require.Len(t, call.Args, 1)
			assert.Equal(t, ast.ArgInline, call.Args[0].Kind)
			assert.Len(t, call.Args[0].Content, 1)
		})
	}
}

func TestParse_SugarNotOpened(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "snake_case", want: []string{"w:snake_case"}},
		{input: "a * b", want: []string{"w:a", "_", "w:*", "_", "w:b"}},
		{input: "x == y", want: []string{"w:x", "_", "w:==", "_", "w:y"}},
		{input: "2*3", want: []string{"w:2*3"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input)
			assert.Equal(t, tt.want, describe(file.Paragraphs[0].Parts[0].Line))
		})
	}
}

func TestParse_NestedSugar(t *testing.T) {
	file := mustParse(t, "**_x_**")
	bold := file.Paragraphs[0].Parts[0].Line[0].(*ast.RawCall)
	require.Equal(t, "**", bold.Name)

	italic, ok := bold.Args[0].Content[0].(*ast.RawCall)
	require.True(t, ok)
	assert.Equal(t, "_", italic.Name)
	assert.Equal(t, source.NewSpan(2, 5), italic.Loc)
}

func TestParse_SugarAcrossLines(t *testing.T) {
	file := mustParse(t, "_one\ntwo_")
	require.Len(t, file.Paragraphs[0].Parts, 1)
	italic := file.Paragraphs[0].Parts[0].Line[0].(*ast.RawCall)
	assert.Equal(t, []string{"w:one", "_", "w:two"}, describe(italic.Args[0].Content))
}

func TestParse_Runs(t *testing.T) {
	file := mustParse(t, "a---b ~ c")
	assert.Equal(t, []string{"w:a", "w:---", "w:b", "_", "w:~", "_", "w:c"},
		describe(file.Paragraphs[0].Parts[0].Line))
}

func TestParse_Escape(t *testing.T) {
	file := mustParse(t, `\_x\{`)
	line := file.Paragraphs[0].Parts[0].Line
	assert.Equal(t, []string{"w:_", "w:x", "w:{"}, describe(line))
	assert.Equal(t, source.NewSpan(0, 2), line[0].Span())
}

func TestParse_Verbatim(t *testing.T) {
	file := mustParse(t, "use !a*b_c! here, wow!")
	assert.Equal(t, []string{"w:use", "_", "!a*b_c", "_", "w:here,", "_", "w:wow!"},
		describe(file.Paragraphs[0].Parts[0].Line))
}

func TestParse_Comment(t *testing.T) {
	file := mustParse(t, "text // a note\nmore")
	parts := file.Paragraphs[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, []string{"w:text", "_", "// a note"}, describe(parts[0].Line))
}

func TestParse_MultiLineComment(t *testing.T) {
	file := mustParse(t, "/* a /* b */ c\n  d */")
	line := file.Paragraphs[0].Parts[0].Line
	require.Len(t, line, 1)

	comment, ok := line[0].(*ast.RawMultiLineComment)
	require.True(t, ok)
	assert.Equal(t, source.NewSpan(0, 21), comment.Loc)

	var nested, indented int
	for _, node := range comment.Content {
		switch n := node.(type) {
		case *ast.CommentNested:
			nested++
			assert.Equal(t, source.NewSpan(5, 12), n.Loc)
		case *ast.CommentIndented:
			indented++
			assert.Equal(t, "  ", n.Indent)
			assert.Equal(t, 2, n.Width())
		}
	}
	assert.Equal(t, 1, nested)
	assert.Equal(t, 1, indented)
	assert.Equal(t, " a /* b */ c\n  d ", ast.CommentText(comment.Content))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		span  source.Span
	}{
		{name: "unclosed group", input: ".foo{x", kind: parser.ErrUnterminatedCall, span: source.NewSpan(4, 5)},
		{name: "unclosed attrs", input: ".foo[a", kind: parser.ErrUnterminatedCall, span: source.NewSpan(4, 5)},
		{name: "group across blank line", input: ".foo{a\n\nb}", kind: parser.ErrUnterminatedCall, span: source.NewSpan(4, 5)},
		{name: "trailer without body", input: ".foo::\nx", kind: parser.ErrUnterminatedCall, span: source.NewSpan(4, 6)},
		{name: "unclosed comment", input: "x /* y", kind: parser.ErrUnbalancedComment, span: source.NewSpan(2, 4)},
		{name: "unclosed nested comment", input: "/* /* */", kind: parser.ErrUnbalancedComment, span: source.NewSpan(0, 2)},
		{name: "stray closer", input: "x */", kind: parser.ErrUnbalancedComment, span: source.NewSpan(2, 4)},
		{name: "unclosed sugar", input: "a **b", kind: parser.ErrUnterminatedSugar, span: source.NewSpan(2, 4)},
		{name: "misnested sugar", input: "**a _b** c_", kind: parser.ErrUnterminatedSugar, span: source.NewSpan(4, 5)},
		{name: "stray open brace", input: "a { b", kind: parser.ErrUnexpectedInput, span: source.NewSpan(2, 3)},
		{name: "stray close brace", input: "a } b", kind: parser.ErrUnexpectedInput, span: source.NewSpan(2, 3)},
		{name: "inline trailer", input: "see .foo::\n\tx", kind: parser.ErrMisplacedTrailer, span: source.NewSpan(8, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.Parse("test.em", tt.input)
			require.Error(t, err)
			assert.Nil(t, file)
			assert.ErrorIs(t, err, tt.kind)

			var perr *parser.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.span, perr.Span)
			assert.Contains(t, err.Error(), "found at ")
		})
	}
}

func TestParse_ErrorMessage(t *testing.T) {
	_, err := parser.Parse("test.em", "x */")
	require.Error(t, err)
	assert.Equal(t, "test.em:1:3: unbalanced comment: comment closer without an opener, found at 1:3:1:5", err.Error())
}

func TestParse_MaxDepth(t *testing.T) {
	input := ".a{.b{.c{x}}}"

	_, err := parser.Parse("test.em", input, parser.WithMaxDepth(3))
	require.NoError(t, err)

	_, err = parser.Parse("test.em", input, parser.WithMaxDepth(2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrNestingTooDeep))
}

func TestParse_SpansNest(t *testing.T) {
	input := ".section[id=a]{Intro}::\n" +
		"\tSome **bold _and italic_** text --- with .ref{x: y}.\n" +
		"\t/* note\n\t   /* inner */ */ and // trailing\n" +
		"\n" +
		"Plain ~ text with !verb! and `code`.\n"
	file := mustParse(t, input)

	whole := file.Span()
	for _, par := range file.Paragraphs {
		assert.True(t, whole.Contains(par.Loc))
		for _, part := range par.Parts {
			assert.True(t, par.Loc.Contains(part.Loc), "part %v outside paragraph %v", part.Loc, par.Loc)
			for _, node := range part.Contents() {
				assertNested(t, part.Loc, node)
			}
		}
	}
}

func assertNested(t *testing.T, parent source.Span, node ast.Raw) {
	t.Helper()
	assert.True(t, parent.Contains(node.Span()), "node %v outside parent %v", node.Span(), parent)

	call, ok := node.(*ast.RawCall)
	if !ok {
		return
	}
	for _, arg := range call.Args {
		assert.True(t, call.Loc.Contains(arg.Loc), "arg %v outside call %v", arg.Loc, call.Loc)
		for _, child := range arg.Content {
			assertNested(t, arg.Loc, child)
		}
		if arg.Trailer != nil {
			for _, part := range arg.Trailer.Parts {
				assert.True(t, arg.Loc.Contains(part.Loc))
				for _, child := range part.Contents() {
					assertNested(t, part.Loc, child)
				}
			}
		}
	}
}
