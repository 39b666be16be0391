package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		localized string
		base      string
		want      string
	}{
		{"localized present", "Pièces de métal", "Metal Parts", "Pièces de métal"},
		{"localized empty", "", "Metal Parts", "Metal Parts"},
		{"localized blank", "   ", "Metal Parts", "Metal Parts"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ChooseDisplayName(tt.localized, tt.base))
		})
	}
}

func TestDisplayName_AllEntities(t *testing.T) {
	t.Parallel()

	item := &Item{Name: "Scrap Metal", NameFR: "Ferraille"}
	npc := &NPC{Name: "Guard"}
	entry := &CompendiumEntry{Title: "Leyak", TitleFR: "Léyak"}
	node := &DependencyNode{ItemName: "Wood Stock"}

	assert.Equal(t, "Ferraille", item.DisplayName())
	assert.Equal(t, "Guard", npc.DisplayName())
	assert.Equal(t, "Léyak", entry.DisplayName())
	assert.Equal(t, "Wood Stock", node.DisplayName())
}

func TestDependencyNode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		node    DependencyNode
		wantErr error
	}{
		{
			name: "craftable with children",
			node: DependencyNode{ItemID: "rifle", Quantity: 1, Craftable: true,
				Children: []*DependencyNode{{ItemID: "wood", Quantity: 1}}},
		},
		{
			name: "raw leaf",
			node: DependencyNode{ItemID: "wood", Quantity: 3},
		},
		{
			name: "craftable without ingredients",
			node: DependencyNode{ItemID: "blueprint", Quantity: 1, Craftable: true},
		},
		{
			name:    "zero quantity",
			node:    DependencyNode{ItemID: "wood", Quantity: 0},
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name: "leaf with children",
			node: DependencyNode{ItemID: "wood", Quantity: 1,
				Children: []*DependencyNode{{ItemID: "bark", Quantity: 1}}},
			wantErr: ErrLeafHasChildren,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.node.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.node.ItemID)
		})
	}
}

func TestDependencyNode_Key(t *testing.T) {
	t.Parallel()

	n := &DependencyNode{ItemID: "scrap_metal"}
	assert.Equal(t, NodeKey{ItemID: "scrap_metal", Position: 2}, n.Key(2))
	assert.Equal(t, "scrap_metal#2", n.Key(2).String())
	assert.NotEqual(t, n.Key(0), n.Key(1))
}

func TestItem_RecipeAndIcon(t *testing.T) {
	t.Parallel()

	raw := &Item{ID: "scrap_metal"}
	assert.False(t, raw.Craftable())
	assert.Nil(t, raw.Recipe())
	assert.Equal(t, "scrap_metal", raw.IconIdentifier())

	crafted := &Item{
		ID:        "metal_parts",
		IconLocal: "itemicon_metal_parts.png",
		Variants: []RecipeVariant{
			{Ingredients: []Ingredient{{ItemID: "scrap_metal", Quantity: 3}}},
			{Ingredients: []Ingredient{{ItemID: "tin_can", Quantity: 5}}},
		},
	}
	require.True(t, crafted.Craftable())
	assert.Equal(t, "scrap_metal", crafted.Recipe().Ingredients[0].ItemID)
	assert.Equal(t, "itemicon_metal_parts.png", crafted.IconIdentifier())
}
