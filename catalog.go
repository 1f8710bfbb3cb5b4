package typist

import (
	"fmt"
	"math"
	"sort"
)

// Catalog is an immutable, luminance-sorted set of glyph entries.
//
// NewCatalog does not sort: entries must already be ascending by
// Luminance (see SortEntries). Searching an unsorted catalog gives
// undefined results; Validate reports the violation for loaders that want
// to check.
type Catalog struct {
	entries []GlyphEntry
}

// NewCatalog creates a catalog over a copy of entries.
func NewCatalog(entries []GlyphEntry) *Catalog {
	c := &Catalog{entries: make([]GlyphEntry, len(entries))}
	copy(c.entries, entries)
	return c
}

// SortEntries stable-sorts entries ascending by luminance, keeping input
// order among equal luminances.
func SortEntries(entries []GlyphEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Luminance < entries[j].Luminance
	})
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the i-th entry in luminance order.
func (c *Catalog) Entry(i int) GlyphEntry {
	return c.entries[i]
}

// Entries returns a copy of the entries in luminance order.
func (c *Catalog) Entries() []GlyphEntry {
	out := make([]GlyphEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FeatureLen returns the feature length shared by every entry, or 0 when
// the catalog is empty or its entries disagree.
func (c *Catalog) FeatureLen() int {
	if len(c.entries) == 0 {
		return 0
	}
	n := len(c.entries[0].Features)
	for _, e := range c.entries[1:] {
		if len(e.Features) != n {
			return 0
		}
	}
	return n
}

// CoarseIndex returns the index of the entry whose luminance is closest to
// target. Ties go to the lower index and targets outside the catalog's
// range clamp to the first or last entry. An empty catalog yields 0.
func (c *Catalog) CoarseIndex(target float64) int {
	n := len(c.entries)
	if n == 0 {
		return 0
	}

	// First entry with luminance >= target.
	lo := sort.Search(n, func(i int) bool {
		return c.entries[i].Luminance >= target
	})
	if lo >= n {
		return n - 1
	}
	if lo == 0 {
		return 0
	}
	above := math.Abs(c.entries[lo].Luminance - target)
	below := math.Abs(c.entries[lo-1].Luminance - target)
	if above < below {
		return lo
	}
	return lo - 1
}

// Validate checks the catalog's structural preconditions: ascending
// luminance, finite values and a uniform feature length.
func (c *Catalog) Validate() error {
	featureLen := -1
	for i, e := range c.entries {
		if math.IsNaN(e.Luminance) || math.IsInf(e.Luminance, 0) {
			return fmt.Errorf("entry %d (%q): luminance is not finite", i, e.Character)
		}
		if i > 0 && e.Luminance < c.entries[i-1].Luminance {
			return fmt.Errorf("entry %d (%q): luminance %.6f below previous %.6f",
				i, e.Character, e.Luminance, c.entries[i-1].Luminance)
		}
		if len(e.Features) == 0 {
			return fmt.Errorf("entry %d (%q): empty feature vector", i, e.Character)
		}
		if featureLen < 0 {
			featureLen = len(e.Features)
		} else if len(e.Features) != featureLen {
			return fmt.Errorf("entry %d (%q): feature length %d, expected %d",
				i, e.Character, len(e.Features), featureLen)
		}
		for _, v := range e.Features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("entry %d (%q): feature is not finite", i, e.Character)
			}
		}
	}
	return nil
}
