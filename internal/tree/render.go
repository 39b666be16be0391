// Package tree renders dependency trees as nested, framework-agnostic views.
package tree

import (
	"log/slog"
	"strconv"

	"github.com/udisondev/craftdex/internal/icon"
	"github.com/udisondev/craftdex/internal/model"
)

const (
	// DefaultIndentWidth is the indentation per depth level.
	DefaultIndentWidth = 2
	// DefaultIconSize is the requested icon display size for tree rows.
	DefaultIconSize = 24
	// DefaultMaxDepth bounds rendering of malformed (cyclic) input.
	DefaultMaxDepth = 64
)

// Issue codes attached to views of malformed nodes.
const (
	IssueLeafWithChildren    = "non_craftable_with_children"
	IssueNonPositiveQuantity = "non_positive_quantity"
	IssueTooDeep             = "too_deep"
)

// IconLookup returns the icon identifier for an item ID; "" means no icon.
type IconLookup func(itemID string) string

// Options controls rendering. The zero value is usable.
type Options struct {
	Icons       *icon.Profile
	IconSize    int
	IconLookup  IconLookup
	IndentWidth int
	MaxDepth    int
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Icons == nil {
		o.Icons = icon.ItemProfile
	}
	if o.IconSize <= 0 {
		o.IconSize = DefaultIconSize
	}
	if o.IconLookup == nil {
		o.IconLookup = func(itemID string) string { return itemID }
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// View is the rendered form of one node.
// Icon is nil when the item has no icon; callers show a neutral placeholder.
type View struct {
	Key           model.NodeKey   `json:"key"`
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	Craftable     bool            `json:"craftable"`
	Quantity      int             `json:"quantity"`
	QuantityLabel string          `json:"quantity_label"`
	Depth         int             `json:"depth"`
	Indent        int             `json:"indent"`
	Icon          *icon.Reference `json:"icon"`
	Truncated     bool            `json:"truncated,omitempty"`
	Issues        []string        `json:"issues,omitempty"`
	Children      []*View         `json:"children"`
}

// QuantityLabel formats a quantity for display, e.g. "×3".
func QuantityLabel(q int) string {
	return "×" + strconv.Itoa(q)
}

// Render walks root depth-first and returns its view tree.
// The input is never modified; rendering the same tree twice yields equal views.
func Render(root *model.DependencyNode, opts Options) *View {
	if root == nil {
		return nil
	}
	opts = opts.withDefaults()
	return render(root, 0, 0, opts)
}

func render(n *model.DependencyNode, depth, position int, opts Options) *View {
	v := &View{
		Key:           n.Key(position),
		ItemID:        n.ItemID,
		Name:          n.DisplayName(),
		Craftable:     n.Craftable,
		Quantity:      n.Quantity,
		QuantityLabel: QuantityLabel(n.Quantity),
		Depth:         depth,
		Indent:        depth * opts.IndentWidth,
		Icon:          opts.Icons.Resolve(opts.IconLookup(n.ItemID), opts.IconSize),
		Children:      []*View{},
	}

	expand := len(n.Children) > 0
	if n.Quantity < 1 {
		opts.Logger.Warn("malformed dependency node",
			"itemID", n.ItemID,
			"issue", IssueNonPositiveQuantity,
			"quantity", n.Quantity)
		v.Issues = append(v.Issues, IssueNonPositiveQuantity)
		expand = false
	}
	if !n.Craftable && len(n.Children) > 0 {
		opts.Logger.Warn("malformed dependency node",
			"itemID", n.ItemID,
			"issue", IssueLeafWithChildren,
			"children", len(n.Children))
		v.Issues = append(v.Issues, IssueLeafWithChildren)
		expand = false
	}
	if expand && depth >= opts.MaxDepth {
		opts.Logger.Warn("dependency tree too deep, truncating",
			"itemID", n.ItemID,
			"depth", depth,
			"maxDepth", opts.MaxDepth)
		v.Truncated = true
		v.Issues = append(v.Issues, IssueTooDeep)
		expand = false
	}
	if !expand {
		return v
	}

	v.Children = make([]*View, 0, len(n.Children))
	for i, child := range n.Children {
		if child == nil {
			continue
		}
		v.Children = append(v.Children, render(child, depth+1, i, opts))
	}
	return v
}

// Flatten returns the views of root in pre-order emission order.
func Flatten(root *View) []*View {
	var out []*View
	var visit func(v *View)
	visit = func(v *View) {
		out = append(out, v)
		for _, c := range v.Children {
			visit(c)
		}
	}
	if root != nil {
		visit(root)
	}
	return out
}
