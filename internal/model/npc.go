package model

// NPC — персонаж из базы (торговцы, враги, боссы).
type NPC struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	NameFR    string `json:"name_fr,omitempty" yaml:"name_fr"`
	ImagePath string `json:"image_path,omitempty" yaml:"image_path"`
}

// DisplayName returns the localized name when present.
func (n *NPC) DisplayName() string {
	return ChooseDisplayName(n.NameFR, n.Name)
}

// CompendiumEntry is a lore entry shown in the compendium.
type CompendiumEntry struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	TitleFR   string `json:"title_fr,omitempty" yaml:"title_fr"`
	ImagePath string `json:"image_path,omitempty" yaml:"image_path"`
}

// DisplayName returns the localized title when present.
func (e *CompendiumEntry) DisplayName() string {
	return ChooseDisplayName(e.TitleFR, e.Title)
}
