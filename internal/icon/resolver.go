package icon

import (
	"path"
	"strconv"
	"strings"
)

// rawExtensions are stripped from identifiers before composing asset paths.
var rawExtensions = []string{".png", ".webp", ".jpg", ".jpeg", ".gif"}

// Reference points at a concrete asset. Size == OriginalSize means the unscaled file.
type Reference struct {
	Base    string `json:"base"`
	Size    int    `json:"size"`
	Format  string `json:"format"`
	BaseURL string `json:"-"`
}

// IsOriginal reports whether the reference targets the unscaled asset.
func (r Reference) IsOriginal() bool {
	return r.Size == OriginalSize
}

// Path returns the asset file name: {base}-{size}.{format} or {base}.{format}.
func (r Reference) Path() string {
	if r.IsOriginal() {
		return r.Base + "." + r.Format
	}
	return r.Base + "-" + strconv.Itoa(r.Size) + "." + r.Format
}

// URL joins the asset path with the profile's base URL.
func (r Reference) URL() string {
	if r.BaseURL == "" {
		return r.Path()
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + r.Path()
}

// Profile is a resolver configuration for one kind of image.
// Profiles are built once at startup and never mutated.
type Profile struct {
	Name         string
	Table        SizeTable
	Format       string
	LegacyFormat string
	BaseURL      string
}

// ItemProfile resolves item icons.
var ItemProfile = &Profile{
	Name:         "item",
	Table:        MustSizeTable(DefaultItemSizes...),
	Format:       "webp",
	LegacyFormat: "png",
	BaseURL:      "/icons",
}

// LargeProfile resolves NPC and compendium images.
var LargeProfile = &Profile{
	Name:         "large",
	Table:        MustSizeTable(DefaultLargeSizes...),
	Format:       "webp",
	LegacyFormat: "png",
	BaseURL:      "/images",
}

// Resolve picks the best asset for identifier at the requested display size.
// Returns nil when identifier is empty: that is the "no icon" case, not an error.
func (p *Profile) Resolve(identifier string, requested int) *Reference {
	base := Normalize(identifier)
	if base == "" {
		return nil
	}
	return &Reference{
		Base:    base,
		Size:    p.Table.Pick(requested),
		Format:  p.Format,
		BaseURL: p.BaseURL,
	}
}

// ResolveLegacy returns the unoptimized original asset in the legacy format.
func (p *Profile) ResolveLegacy(identifier string) *Reference {
	base := Normalize(identifier)
	if base == "" {
		return nil
	}
	return &Reference{
		Base:    base,
		Size:    OriginalSize,
		Format:  p.LegacyFormat,
		BaseURL: p.BaseURL,
	}
}

// Normalize strips surrounding whitespace, any directory prefix and a known
// raw file extension (case-insensitive) from identifier.
func Normalize(identifier string) string {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return ""
	}
	id = path.Base(strings.ReplaceAll(id, "\\", "/"))
	if id == "." || id == "/" {
		return ""
	}
	lower := strings.ToLower(id)
	for _, ext := range rawExtensions {
		if strings.HasSuffix(lower, ext) {
			return id[:len(id)-len(ext)]
		}
	}
	return id
}

// Resolve resolves an item icon with ItemProfile.
func Resolve(identifier string, requested int) *Reference {
	return ItemProfile.Resolve(identifier, requested)
}
