// Package ast defines the two trees of the front end: the raw syntax tree
// produced by the parser and the resolved content tree produced by the
// resolver. Both share the File/Paragraph/Part block structure and the
// recursive multi-line comment structure.
//
// Every node carries the span of the characters it was built from, and a
// node's span always contains the spans of its children. Trees are
// immutable once built.
package ast
