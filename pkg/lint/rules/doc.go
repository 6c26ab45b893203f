// Package rules provides the built-in lints for emblem.
//
// # Lints
//
//   - duplicate-attrs: an attribute name is written more than once in one
//     command's attribute list. Option "allow" lists names that may repeat.
//
//   - empty-attrs: a command is written with an empty attribute list "[]".
//
//   - redundant-sugar: formatting is applied inside formatting of the
//     same kind, for example an italic run inside another italic run.
//
// Every lint registers itself with lint.DefaultRegistry from init.
package rules
