package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveQuantity is returned for nodes with quantity < 1.
	ErrNonPositiveQuantity = errors.New("quantity must be at least 1")
	// ErrLeafHasChildren is returned for non-craftable nodes that carry children.
	ErrLeafHasChildren = errors.New("non-craftable node has children")
)

// DependencyNode — узел дерева зависимостей крафта.
//
// Quantity is how many units the parent recipe step consumes; for the root it is
// the number of items requested. Children keep the recipe's ingredient order.
// A tree is immutable once built and may be shared between concurrent renders.
type DependencyNode struct {
	ItemID     string            `json:"item_id"`
	ItemName   string            `json:"item_name"`
	ItemNameFR string            `json:"item_name_fr,omitempty"`
	Quantity   int               `json:"quantity"`
	Craftable  bool              `json:"craftable"`
	Children   []*DependencyNode `json:"children"`
}

// NodeKey identifies a node for rendering purposes.
// ItemID alone is not unique: the same item can appear in several branches.
type NodeKey struct {
	ItemID   string `json:"item_id"`
	Position int    `json:"position"`
}

// String formats the key as "itemID#position".
func (k NodeKey) String() string {
	return fmt.Sprintf("%s#%d", k.ItemID, k.Position)
}

// Key returns the node identity at the given sibling position.
func (n *DependencyNode) Key(position int) NodeKey {
	return NodeKey{ItemID: n.ItemID, Position: position}
}

// DisplayName returns the localized name when present.
func (n *DependencyNode) DisplayName() string {
	return ChooseDisplayName(n.ItemNameFR, n.ItemName)
}

// IsLeaf reports whether the node has no children.
func (n *DependencyNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Validate checks the node's own invariants. Children are not visited.
func (n *DependencyNode) Validate() error {
	if n.Quantity < 1 {
		return fmt.Errorf("item %q: %w (got %d)", n.ItemID, ErrNonPositiveQuantity, n.Quantity)
	}
	if !n.Craftable && len(n.Children) > 0 {
		return fmt.Errorf("item %q: %w (%d children)", n.ItemID, ErrLeafHasChildren, len(n.Children))
	}
	return nil
}
