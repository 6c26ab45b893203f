package ast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk; return SkipChildren to skip the
// node's children and continue.
type WalkFunc func(node Content) error

// SkipChildren is returned from a WalkFunc to skip a node's children.
//
//nolint:gochecknoglobals // Sentinel error
var SkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of every content node of doc, in
// document order. It uses an explicit stack so deeply nested input cannot
// exhaust the call stack.
func Walk(doc *Document, walkFunc WalkFunc) error {
	if doc == nil {
		return nil
	}
	var roots []Content
	for _, par := range doc.Paragraphs {
		roots = appendParagraph(roots, par)
	}
	return WalkContent(roots, walkFunc)
}

// WalkContent performs a pre-order traversal starting at each of nodes in turn.
func WalkContent(nodes []Content, walkFunc WalkFunc) error {
	stack := make([]Content, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := walkFunc(node); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}

		children := Children(node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return nil
}

// Children returns the direct content children of node in source order:
// for a Command, inline groups, then the remainder, then each trailer's parts.
func Children(node Content) []Content {
	switch n := node.(type) {
	case *Command:
		var children []Content
		for _, group := range n.InlineArgs {
			children = append(children, group...)
		}
		if n.Remainder != nil {
			children = append(children, n.Remainder.Content...)
		}
		for _, par := range n.Trailers {
			children = appendParagraph(children, par)
		}
		return children
	case *Sugar:
		return n.Content
	default:
		return nil
	}
}

func appendParagraph(dst []Content, par ContentParagraph) []Content {
	for _, part := range par.Parts {
		dst = append(dst, part.Contents()...)
	}
	return dst
}
