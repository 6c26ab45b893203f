package resolve

import (
	"strings"

	"github.com/yaklabco/emblem/pkg/ast"
	"github.com/yaklabco/emblem/pkg/source"
)

// attrSpace is the whitespace dropped around attribute names and values.
const attrSpace = " \t\r\n"

// argStage orders the argument kinds a command may take.
type argStage int

const (
	stageStart argStage = iota
	stageAttrs
	stageInline
	stageRemainder
	stageTrailer
)

func stageOf(kind ast.ArgKind) argStage {
	switch kind {
	case ast.ArgAttrs:
		return stageAttrs
	case ast.ArgInline:
		return stageInline
	case ast.ArgRemainder:
		return stageRemainder
	default:
		return stageTrailer
	}
}

// repeatable reports whether more than one argument of a stage is allowed.
func (s argStage) repeatable() bool {
	return s == stageInline || s == stageTrailer
}

// command builds a command from a raw call. Arguments must appear as at
// most one attribute list, then inline groups, then at most one remainder,
// then trailers.
func (r *resolver) command(raw *ast.RawCall) (ast.Content, error) {
	cmd := &ast.Command{
		Name:   raw.Name,
		Pluses: raw.Pluses,
		Loc:    raw.Loc,
	}

	stage := stageStart
	for _, arg := range raw.Args {
		next := stageOf(arg.Kind)
		if next < stage || (next == stage && !next.repeatable()) {
			return nil, r.fail(ErrArgumentOrder, arg.Loc, "%s argument of '.%s' cannot follow its %s argument",
				arg.Kind, raw.Name, stageName(stage))
		}
		stage = next

		switch arg.Kind {
		case ast.ArgAttrs:
			attrs, err := r.attrs(arg)
			if err != nil {
				return nil, err
			}
			cmd.Attrs = attrs

		case ast.ArgInline:
			content, err := r.content(arg.Content)
			if err != nil {
				return nil, err
			}
			cmd.InlineArgs = append(cmd.InlineArgs, content)

		case ast.ArgRemainder:
			content, err := r.content(arg.Content)
			if err != nil {
				return nil, err
			}
			cmd.Remainder = &ast.Remainder{Content: content, Loc: arg.Loc}

		case ast.ArgTrailer:
			if arg.Trailer == nil {
				panic(ast.InternalError{Msg: "trailer argument without a body"})
			}
			par, err := r.paragraph(arg.Trailer)
			if err != nil {
				return nil, err
			}
			cmd.Trailers = append(cmd.Trailers, par)
		}
	}
	return cmd, nil
}

func stageName(s argStage) string {
	switch s {
	case stageAttrs:
		return ast.ArgAttrs.String()
	case stageInline:
		return ast.ArgInline.String()
	case stageRemainder:
		return ast.ArgRemainder.String()
	default:
		return ast.ArgTrailer.String()
	}
}

// attrs parses a comma-separated list of name or name=value items.
// Whitespace around names and values is dropped; an empty list is valid,
// an empty item is not.
func (r *resolver) attrs(arg *ast.RawArg) (*ast.Attrs, error) {
	out := &ast.Attrs{Items: []ast.Attribute{}, Loc: arg.Loc}
	if strings.Trim(arg.Text, attrSpace) == "" {
		return out, nil
	}

	offset := arg.TextLoc.Start
	for _, item := range strings.Split(arg.Text, ",") {
		itemStart := offset
		offset += len(item) + 1

		name, value, hasValue := strings.Cut(item, "=")
		nameSpan := trimmedSpan(item, itemStart, 0, len(name))
		if nameSpan.IsEmpty() {
			if hasValue {
				return nil, r.fail(ErrBadAttribute, trimmedSpan(item, itemStart, 0, len(item)), "attribute has no name")
			}
			return nil, r.fail(ErrBadAttribute, source.NewSpan(itemStart, itemStart+len(item)), "empty attribute")
		}

		attr := ast.Attribute{
			Name: strings.Trim(name, attrSpace),
			Loc:  nameSpan,
		}
		if hasValue {
			valueSpan := trimmedSpan(item, itemStart, len(name)+1, len(item))
			text := strings.Trim(value, attrSpace)
			attr.Value = &text
			attr.Loc = nameSpan.Union(source.NewSpan(valueSpan.End, valueSpan.End))
		}
		out.Items = append(out.Items, attr)
	}
	return out, nil
}

// trimmedSpan returns the absolute span of item[from:to] without
// surrounding whitespace, where item starts at base.
func trimmedSpan(item string, base, from, to int) source.Span {
	part := item[from:to]
	lead := len(part) - len(strings.TrimLeft(part, attrSpace))
	trimmed := strings.Trim(part, attrSpace)
	if trimmed == "" {
		return source.NewSpan(base+from, base+from)
	}
	start := base + from + lead
	return source.NewSpan(start, start+len(trimmed))
}
