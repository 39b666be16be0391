// Package icon resolves abstract icon identifiers to pre-rendered assets.
//
// Assets are served at {base}-{size}.{format} for every size in the table and
// at {base}.{format} for the original (unscaled) image.
package icon

import (
	"errors"
	"fmt"
	"slices"
)

// OriginalSize marks a reference to the unscaled asset.
const OriginalSize = 0

// DefaultItemSizes are the pre-rendered item icon sizes.
var DefaultItemSizes = []int{20, 24, 32, 40, 48, 56, 80}

// DefaultLargeSizes are the pre-rendered NPC and compendium image sizes.
var DefaultLargeSizes = []int{80, 128, 256}

// ErrEmptySizeTable is returned when a size table has no entries.
var ErrEmptySizeTable = errors.New("size table is empty")

// SizeTable is an immutable ascending set of supported render sizes.
type SizeTable struct {
	sizes []int
}

// NewSizeTable validates sizes and returns them as an ascending table.
// The input slice is copied.
func NewSizeTable(sizes ...int) (SizeTable, error) {
	if len(sizes) == 0 {
		return SizeTable{}, ErrEmptySizeTable
	}
	sorted := slices.Clone(sizes)
	slices.Sort(sorted)
	for i, s := range sorted {
		if s <= 0 {
			return SizeTable{}, fmt.Errorf("size table: non-positive size %d", s)
		}
		if i > 0 && sorted[i-1] == s {
			return SizeTable{}, fmt.Errorf("size table: duplicate size %d", s)
		}
	}
	return SizeTable{sizes: sorted}, nil
}

// MustSizeTable is NewSizeTable that panics on invalid input.
// Only for package-level defaults.
func MustSizeTable(sizes ...int) SizeTable {
	t, err := NewSizeTable(sizes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Sizes returns a copy of the table.
func (t SizeTable) Sizes() []int {
	return slices.Clone(t.sizes)
}

// Max returns the largest pre-rendered size, or 0 for an empty table.
func (t SizeTable) Max() int {
	if len(t.sizes) == 0 {
		return 0
	}
	return t.sizes[len(t.sizes)-1]
}

// Pick returns the smallest size >= requested, or OriginalSize when requested
// exceeds every entry. Never picks a size smaller than requested.
func (t SizeTable) Pick(requested int) int {
	i, _ := slices.BinarySearch(t.sizes, requested)
	if i == len(t.sizes) {
		return OriginalSize
	}
	return t.sizes[i]
}
