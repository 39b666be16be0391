package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/craftdex/internal/model"
)

// catalogFile — формат YAML-файла каталога.
type catalogFile struct {
	Items      []model.Item            `yaml:"items"`
	NPCs       []model.NPC             `yaml:"npcs"`
	Compendium []model.CompendiumEntry `yaml:"compendium"`
}

// Catalog is an in-memory, read-only table of game content.
// It is built once and safe for concurrent readers.
type Catalog struct {
	items      map[string]*model.Item
	npcs       map[string]*model.NPC
	compendium map[string]*model.CompendiumEntry
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	slog.Info("loaded catalog",
		"path", path,
		"items", len(c.items),
		"npcs", len(c.npcs),
		"compendium", len(c.compendium))
	return c, nil
}

// ParseCatalog builds a Catalog from YAML bytes.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return NewCatalog(f.Items, f.NPCs, f.Compendium)
}

// NewCatalog indexes the given entities, rejecting blank or duplicate IDs and
// ingredients with quantity < 1.
func NewCatalog(items []model.Item, npcs []model.NPC, entries []model.CompendiumEntry) (*Catalog, error) {
	c := &Catalog{
		items:      make(map[string]*model.Item, len(items)),
		npcs:       make(map[string]*model.NPC, len(npcs)),
		compendium: make(map[string]*model.CompendiumEntry, len(entries)),
	}

	for i := range items {
		it := &items[i]
		if err := validateItem(it); err != nil {
			return nil, err
		}
		if _, dup := c.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		c.items[it.ID] = it
	}
	for i := range npcs {
		n := &npcs[i]
		if strings.TrimSpace(n.ID) == "" {
			return nil, fmt.Errorf("npc #%d: empty id", i)
		}
		if _, dup := c.npcs[n.ID]; dup {
			return nil, fmt.Errorf("duplicate npc id %q", n.ID)
		}
		c.npcs[n.ID] = n
	}
	for i := range entries {
		e := &entries[i]
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("compendium entry #%d: empty id", i)
		}
		if _, dup := c.compendium[e.ID]; dup {
			return nil, fmt.Errorf("duplicate compendium id %q", e.ID)
		}
		c.compendium[e.ID] = e
	}
	return c, nil
}

func validateItem(it *model.Item) error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("item %q: empty id", it.Name)
	}
	for vi, v := range it.Variants {
		for ii, ing := range v.Ingredients {
			if ing.ItemID == "" {
				return fmt.Errorf("item %q variant %d ingredient %d: empty item_id", it.ID, vi, ii)
			}
			if ing.Quantity < 1 {
				return fmt.Errorf("item %q variant %d ingredient %q: quantity %d < 1",
					it.ID, vi, ing.ItemID, ing.Quantity)
			}
		}
	}
	return nil
}

// Item returns the item with the given ID.
// Returns nil, nil if the item does not exist.
func (c *Catalog) Item(_ context.Context, id string) (*model.Item, error) {
	return c.items[id], nil
}

// NPC returns the NPC with the given ID or nil.
func (c *Catalog) NPC(id string) *model.NPC {
	return c.npcs[id]
}

// CompendiumEntry returns the entry with the given ID or nil.
func (c *Catalog) CompendiumEntry(id string) *model.CompendiumEntry {
	return c.compendium[id]
}

// Items returns all items ordered by display name, then ID.
func (c *Catalog) Items() []*model.Item {
	result := make([]*model.Item, 0, len(c.items))
	for _, it := range c.items {
		result = append(result, it)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].DisplayName(), result[j].DisplayName()
		if a != b {
			return a < b
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}
