// Package resolve turns the parser's raw tree into the typed content tree.
//
// Resolution classifies each raw call as formatting or a command, checks the
// order of command arguments, parses attribute lists and classifies dash and
// glue runs. The raw tree is never modified and the output shares no
// mutable structure with it, so resolving the same raw tree twice yields
// equal documents.
package resolve

import (
	"strings"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

// sugarKinds maps formatting delimiters to the formatting they denote.
var sugarKinds = map[string]ast.SugarKind{
	"_":  ast.Italic,
	"**": ast.Bold,
	"`":  ast.Monospace,
	"=":  ast.Smallcaps,
	"==": ast.AlternateFace,
}

// IsSugarName reports whether a raw call name is a formatting delimiter.
func IsSugarName(name string) bool {
	_, ok := sugarKinds[name]
	return ok
}

type resolver struct {
	file *source.File
}

// Resolve builds the typed document for raw. It stops at the first error.
func Resolve(raw *ast.RawFile) (*ast.Document, error) {
	r := &resolver{file: raw.Source}
	if r.file == nil {
		r.file = source.NewFile("", "")
	}

	doc := &ast.Document{Source: raw.Source}
	if len(raw.Paragraphs) > 0 {
		doc.Paragraphs = make([]ast.ContentParagraph, 0, len(raw.Paragraphs))
	}
	for i := range raw.Paragraphs {
		par, err := r.paragraph(&raw.Paragraphs[i])
		if err != nil {
			return nil, err
		}
		doc.Paragraphs = append(doc.Paragraphs, par)
	}
	return doc, nil
}

func (r *resolver) paragraph(raw *ast.RawParagraph) (ast.ContentParagraph, error) {
	par := ast.ContentParagraph{
		Parts: make([]ast.ContentPart, 0, len(raw.Parts)),
		Loc:   raw.Loc,
	}
	for _, part := range raw.Parts {
		resolved, err := r.part(part)
		if err != nil {
			return par, err
		}
		par.Parts = append(par.Parts, resolved)
	}
	return par, nil
}

func (r *resolver) part(raw ast.RawPart) (ast.ContentPart, error) {
	if raw.Kind == ast.PartCommand {
		node, err := r.node(raw.Command)
		if err != nil {
			return ast.ContentPart{}, err
		}
		return ast.CommandPart(node, raw.Loc), nil
	}

	content, err := r.content(raw.Line)
	if err != nil {
		return ast.ContentPart{}, err
	}
	return ast.LinePart(content, raw.Loc), nil
}

func (r *resolver) content(raw []ast.Raw) ([]ast.Content, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]ast.Content, 0, len(raw))
	for _, node := range raw {
		resolved, err := r.node(node)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *resolver) node(raw ast.Raw) (ast.Content, error) {
	switch n := raw.(type) {
	case *ast.RawCall:
		if kind, ok := sugarKinds[n.Name]; ok {
			return r.sugar(kind, n)
		}
		return r.command(n)
	case *ast.RawWord:
		return r.word(n)
	case *ast.RawWhitespace:
		return &ast.Whitespace{Text: n.Text, Loc: n.Loc}, nil
	case *ast.RawComment:
		return &ast.Comment{Text: n.Text, Loc: n.Loc}, nil
	case *ast.RawMultiLineComment:
		return &ast.MultiLineComment{Content: ast.CloneComments(n.Content), Loc: n.Loc}, nil
	case *ast.RawVerbatim:
		return &ast.Verbatim{Text: n.Text, Loc: n.Loc}, nil
	default:
		panic(ast.InternalError{Msg: "unknown raw node"})
	}
}

// word classifies dash and glue runs. Escaped characters are wider in the
// source than their text and always stay words.
func (r *resolver) word(raw *ast.RawWord) (ast.Content, error) {
	text := raw.Text
	literal := raw.Loc.Len() == len(text)

	switch {
	case literal && text != "" && strings.Trim(text, "-") == "":
		if len(text) > 3 {
			return nil, r.fail(ErrDashLength, raw.Loc, "%d dashes, at most 3 are allowed", len(text))
		}
		return ast.NewDash(text, raw.Loc), nil
	case literal && text != "" && strings.Trim(text, "~") == "":
		if len(text) > 2 {
			return nil, r.fail(ErrGlueLength, raw.Loc, "%d tildes, at most 2 are allowed", len(text))
		}
		return ast.NewGlue(text, raw.Loc), nil
	default:
		return &ast.Word{Text: text, Loc: raw.Loc}, nil
	}
}

func (r *resolver) sugar(kind ast.SugarKind, raw *ast.RawCall) (ast.Content, error) {
	if len(raw.Args) != 1 || raw.Args[0].Kind != ast.ArgInline || raw.Pluses != 0 {
		return nil, r.fail(ErrMalformedSugar, raw.Loc, "%s must wrap exactly one group of content", kind)
	}
	content, err := r.content(raw.Args[0].Content)
	if err != nil {
		return nil, err
	}
	return &ast.Sugar{Kind: kind, Content: content, Loc: raw.Loc}, nil
}
