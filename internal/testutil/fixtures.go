package testutil

import "github.com/udisondev/craftdex/internal/model"

// Item IDs of the rifle fixture:
//
//	rifle ×1
//	├─ metal_parts ×2 (craftable)
//	│  └─ scrap_metal ×3 (raw)
//	└─ wood_stock ×1 (raw)
const (
	RifleID      = "rifle"
	MetalPartsID = "metal_parts"
	ScrapMetalID = "scrap_metal"
	WoodStockID  = "wood_stock"
)

// RifleItems returns a fresh copy of the rifle catalog on every call,
// so tests can mutate it freely.
func RifleItems() []model.Item {
	return []model.Item{
		{
			ID:        RifleID,
			Name:      "Rifle",
			NameFR:    "Fusil",
			Category:  "weapons",
			IconLocal: "itemicon_rifle.png",
			Variants: []model.RecipeVariant{{
				Station: "Fabrication Bench",
				Ingredients: []model.Ingredient{
					{ItemID: MetalPartsID, ItemName: "Metal Parts", Quantity: 2},
					{ItemID: WoodStockID, ItemName: "Wood Stock", Quantity: 1},
				},
			}},
		},
		{
			ID:        MetalPartsID,
			Name:      "Metal Parts",
			Category:  "components",
			IconLocal: "itemicon_metal_parts.png",
			Variants: []model.RecipeVariant{
				{Ingredients: []model.Ingredient{
					{ItemID: ScrapMetalID, ItemName: "Scrap Metal", Quantity: 3},
				}},
				// Второй вариант не участвует в построении дерева.
				{Ingredients: []model.Ingredient{
					{ItemID: "tin_can", ItemName: "Tin Can", Quantity: 6},
				}},
			},
		},
		{
			ID:        ScrapMetalID,
			Name:      "Scrap Metal",
			NameFR:    "Ferraille",
			Category:  "resources",
			IconLocal: "itemicon_scrap_metal.png",
		},
		{
			ID:       WoodStockID,
			Name:     "Wood Stock",
			Category: "resources",
		},
	}
}

// RifleTree returns the dependency tree the rifle fixture must produce for quantity 1.
func RifleTree() *model.DependencyNode {
	return &model.DependencyNode{
		ItemID:     RifleID,
		ItemName:   "Rifle",
		ItemNameFR: "Fusil",
		Quantity:   1,
		Craftable:  true,
		Children: []*model.DependencyNode{
			{
				ItemID:    MetalPartsID,
				ItemName:  "Metal Parts",
				Quantity:  2,
				Craftable: true,
				Children: []*model.DependencyNode{
					{ItemID: ScrapMetalID, ItemName: "Scrap Metal", ItemNameFR: "Ferraille", Quantity: 6, Children: []*model.DependencyNode{}},
				},
			},
			{ItemID: WoodStockID, ItemName: "Wood Stock", Quantity: 1, Children: []*model.DependencyNode{}},
		},
	}
}
