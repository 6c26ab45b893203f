package lint

import "github.com/yaklabco/emblem/pkg/ast"

// NodeCache holds the nodes of a document in pre-order.
//
// The engine walks the tree once and every lint shares the result; a node's
// position in the cache is its pre-order index, which orders diagnostics.
type NodeCache struct {
	nodes []ast.Content
}

// NewNodeCache walks doc and records its nodes.
func NewNodeCache(doc *ast.Document) *NodeCache {
	nc := &NodeCache{}
	_ = ast.Walk(doc, func(node ast.Content) error {
		nc.nodes = append(nc.nodes, node)
		return nil
	})
	return nc
}

// Nodes returns every node in pre-order.
func (nc *NodeCache) Nodes() []ast.Content {
	return nc.nodes
}

// Len returns the number of nodes.
func (nc *NodeCache) Len() int {
	return len(nc.nodes)
}
