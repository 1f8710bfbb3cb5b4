package typist

// Luminance converts an 8-bit RGB triple to luminance in [0, 1] using the
// BT.601 weights: Y = 0.299*R + 0.587*G + 0.114*B. Tiles and glyphs both go
// through this function so their feature vectors share one scale.
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// TileFeature is the luminance signature of one image tile: the per-pixel
// samples in row-major order and their mean.
type TileFeature struct {
	Luminance float64
	Features  []float64
}

// GlyphEntry is one character of a glyph catalog with its precomputed,
// normalized luminance signature.
type GlyphEntry struct {
	Character rune
	Luminance float64
	Features  []float64
}

// MatchResult pairs a tile index with the character chosen for it.
type MatchResult struct {
	Tile      int
	Character rune
}

// Grid is the tiling geometry derived for one conversion.
type Grid struct {
	Columns  int
	Rows     int
	TileSize int
}

// Tiles returns the number of tiles in the grid.
func (g Grid) Tiles() int {
	return g.Columns * g.Rows
}
