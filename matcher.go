package typist

import (
	"errors"
	"math"
)

const (
	// DefaultWindow is the number of catalog entries around the coarse
	// index that are compared by correlation.
	DefaultWindow = 16

	// DefaultFallback is the glyph used when no catalog entry can be
	// matched.
	DefaultFallback = ' '
)

// Matcher finds the catalog entry that best matches a tile in two stages:
// a binary search on mean luminance picks a window of neighbours, then
// the window is searched exhaustively by Pearson correlation.
//
// A Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	catalog  *Catalog
	window   int
	fallback rune
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithMatchWindow sets the candidate window size. Values below 1 keep the
// default.
func WithMatchWindow(w int) MatcherOption {
	return func(m *Matcher) {
		if w >= 1 {
			m.window = w
		}
	}
}

// WithMatchFallback sets the glyph returned when nothing matches.
func WithMatchFallback(r rune) MatcherOption {
	return func(m *Matcher) {
		m.fallback = r
	}
}

// NewMatcher creates a Matcher over c.
func NewMatcher(c *Catalog, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		catalog:  c,
		window:   DefaultWindow,
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fallback returns the matcher's fallback glyph.
func (m *Matcher) Fallback() rune {
	return m.fallback
}

// Window returns the candidate window bounds [from, to) for a mean
// luminance.
func (m *Matcher) Window(luminance float64) (from, to int) {
	n := m.catalog.Len()
	idx := m.catalog.CoarseIndex(luminance)
	from = max(0, idx-m.window/2)
	to = min(n, from+m.window)
	return from, to
}

// Best returns the index and correlation of the best candidate for tile.
// ok is false when the window is empty or no candidate is comparable with
// the tile. Ties keep the lowest index.
func (m *Matcher) Best(tile TileFeature) (index int, score float64, ok bool) {
	from, to := m.Window(tile.Luminance)
	index, score = -1, math.Inf(-1)
	for i := from; i < to; i++ {
		s, err := Correlation(tile.Features, m.catalog.entries[i].Features)
		if errors.Is(err, ErrNotComparable) {
			continue
		}
		if s > score {
			index, score = i, s
		}
	}
	if index < 0 {
		return -1, 0, false
	}
	return index, score, true
}

// Match returns the character of the best matching catalog entry, or the
// fallback glyph when there is none.
func (m *Matcher) Match(tile TileFeature) rune {
	i, _, ok := m.Best(tile)
	if !ok {
		return m.fallback
	}
	return m.catalog.entries[i].Character
}
