package tree

import "github.com/udisondev/craftdex/internal/model"

// Walk visits root and its descendants in pre-order, children in stored order.
// If fn returns false the node's children are skipped. Walk never mutates the tree.
func Walk(root *model.DependencyNode, fn func(n *model.DependencyNode, depth int) bool) {
	if root == nil {
		return
	}
	walk(root, 0, fn)
}

func walk(n *model.DependencyNode, depth int, fn func(*model.DependencyNode, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		if c != nil {
			walk(c, depth+1, fn)
		}
	}
}

// Validate walks the tree and returns every invariant violation found.
func Validate(root *model.DependencyNode) []error {
	var errs []error
	Walk(root, func(n *model.DependencyNode, _ int) bool {
		if err := n.Validate(); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errs
}
