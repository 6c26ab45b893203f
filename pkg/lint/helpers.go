package lint

import "github.com/yaklabco/emblem/pkg/ast"

// AsCommand returns node as a command.
func AsCommand(node ast.Content) (*ast.Command, bool) {
	cmd, ok := node.(*ast.Command)
	return cmd, ok
}

// AsSugar returns node as a sugar.
func AsSugar(node ast.Content) (*ast.Sugar, bool) {
	sugar, ok := node.(*ast.Sugar)
	return sugar, ok
}
