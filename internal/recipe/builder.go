// Package recipe builds crafting dependency trees from a catalog of items.
//
// It is the upstream collaborator of the tree renderer: every tree it returns
// is fully materialized and satisfies the DependencyNode invariants.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/udisondev/craftdex/internal/model"
)

// DefaultMaxDepth bounds recursion when the caller does not configure one.
const DefaultMaxDepth = 32

var (
	// ErrItemNotFound is returned when the requested item is not in the catalog.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidQuantity is returned for requested quantities < 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidIngredient is returned for recipe entries with quantity < 1 or no item id.
	ErrInvalidIngredient = errors.New("invalid recipe ingredient")
	// ErrCycle is returned when an item transitively requires itself.
	ErrCycle = errors.New("recipe cycle detected")
	// ErrMaxDepthExceeded is returned when expansion goes deeper than the configured bound.
	ErrMaxDepthExceeded = errors.New("recipe tree exceeds max depth")
	// ErrQuantityOverflow is returned when a cumulative quantity does not fit in an int.
	ErrQuantityOverflow = errors.New("quantity overflow")
)

// ItemSource looks up catalog items.
// Item returns nil, nil when the item does not exist.
type ItemSource interface {
	Item(ctx context.Context, id string) (*model.Item, error)
}

// Builder expands items into dependency trees.
type Builder struct {
	source   ItemSource
	maxDepth int
}

// NewBuilder creates a Builder. maxDepth <= 0 selects DefaultMaxDepth.
func NewBuilder(source ItemSource, maxDepth int) *Builder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Builder{source: source, maxDepth: maxDepth}
}

// MaxDepth returns the configured recursion bound.
func (b *Builder) MaxDepth() int {
	return b.maxDepth
}

// BuildDependencyTree returns the dependency tree of itemID for quantity units.
//
// Children follow the ingredient order of the item's first recipe variant; each
// child's quantity is the per-craft ingredient amount times its parent's quantity.
// An ingredient missing from the catalog becomes a raw leaf named after the recipe
// entry. An unknown root item is an error, never an empty tree.
func (b *Builder) BuildDependencyTree(ctx context.Context, itemID string, quantity int) (*model.DependencyNode, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("building tree for %q: %w (got %d)", itemID, ErrInvalidQuantity, quantity)
	}

	item, err := b.source.Item(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("looking up item %q: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("building tree for %q: %w", itemID, ErrItemNotFound)
	}

	root, err := b.expand(ctx, item, quantity, nil)
	if err != nil {
		return nil, fmt.Errorf("building tree for %q: %w", itemID, err)
	}

	slog.Debug("dependency tree built", "itemID", itemID, "quantity", quantity)
	return root, nil
}

// expand builds the node for item. path holds the IDs of its ancestors.
func (b *Builder) expand(ctx context.Context, item *model.Item, quantity int, path []string) (*model.DependencyNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, ancestor := range path {
		if ancestor == item.ID {
			return nil, fmt.Errorf("%w: %s", ErrCycle, formatPath(append(path, item.ID)))
		}
	}

	node := &model.DependencyNode{
		ItemID:     item.ID,
		ItemName:   item.Name,
		ItemNameFR: item.NameFR,
		Quantity:   quantity,
		Craftable:  item.Craftable(),
	}

	recipe := item.Recipe()
	if recipe == nil {
		node.Children = []*model.DependencyNode{}
		return node, nil
	}

	childPath := make([]string, len(path), len(path)+1)
	copy(childPath, path)
	childPath = append(childPath, item.ID)
	if len(recipe.Ingredients) > 0 && len(childPath) > b.maxDepth {
		return nil, fmt.Errorf("%w (%d) at %s", ErrMaxDepthExceeded, b.maxDepth, formatPath(childPath))
	}

	node.Children = make([]*model.DependencyNode, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if ing.ItemID == "" || ing.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q ingredient %q quantity %d",
				ErrInvalidIngredient, item.ID, ing.ItemID, ing.Quantity)
		}
		if ing.Quantity > math.MaxInt/quantity {
			return nil, fmt.Errorf("%w: %d × %q of %q (per craft %d)",
				ErrQuantityOverflow, quantity, ing.ItemID, item.ID, ing.Quantity)
		}
		childQty := ing.Quantity * quantity

		sub, err := b.source.Item(ctx, ing.ItemID)
		if err != nil {
			return nil, fmt.Errorf("looking up ingredient %q of %q: %w", ing.ItemID, item.ID, err)
		}
		if sub == nil {
			// Ингредиент без записи в каталоге — базовый ресурс.
			name := ing.ItemName
			if strings.TrimSpace(name) == "" {
				name = ing.ItemID
			}
			node.Children = append(node.Children, &model.DependencyNode{
				ItemID:    ing.ItemID,
				ItemName:  name,
				Quantity:  childQty,
				Craftable: false,
				Children:  []*model.DependencyNode{},
			})
			continue
		}

		child, err := b.expand(ctx, sub, childQty, childPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

func formatPath(ids []string) string {
	return strings.Join(ids, " -> ")
}
