package model

import "strings"

// Item — предмет из каталога вместе с вариантами рецепта.
// Variants[0] is the authoritative recipe; an item without variants is a raw resource.
type Item struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	NameFR    string          `json:"name_fr,omitempty" yaml:"name_fr"`
	Category  string          `json:"category,omitempty" yaml:"category"`
	IconLocal string          `json:"icon_local,omitempty" yaml:"icon_local"`
	Variants  []RecipeVariant `json:"variants,omitempty" yaml:"variants"`
}

// RecipeVariant is one way of crafting an item.
type RecipeVariant struct {
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Station     string       `json:"station,omitempty" yaml:"station"`
}

// Ingredient references an input item and the amount consumed per craft.
type Ingredient struct {
	ItemID   string `json:"item_id" yaml:"item_id"`
	ItemName string `json:"item_name" yaml:"item_name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Craftable reports whether the item has a known recipe.
func (it *Item) Craftable() bool {
	return len(it.Variants) > 0
}

// Recipe returns the authoritative variant, or nil for a raw resource.
func (it *Item) Recipe() *RecipeVariant {
	if len(it.Variants) == 0 {
		return nil
	}
	return &it.Variants[0]
}

// DisplayName returns the localized name when present.
func (it *Item) DisplayName() string {
	return ChooseDisplayName(it.NameFR, it.Name)
}

// IconIdentifier returns the identifier used for icon lookups.
// Falls back to the item ID when no local icon is recorded.
func (it *Item) IconIdentifier() string {
	if s := strings.TrimSpace(it.IconLocal); s != "" {
		return s
	}
	return it.ID
}

// ChooseDisplayName returns localized if it is non-blank, else base.
// All entity types (items, NPCs, compendium entries, tree nodes) go through it.
func ChooseDisplayName(localized, base string) string {
	if strings.TrimSpace(localized) != "" {
		return localized
	}
	return base
}
