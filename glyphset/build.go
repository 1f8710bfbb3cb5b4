package glyphset

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/stat"

	"github.com/wbrown/typist"
)

// DefaultCellSize is the cell size used with the built-in 7x13 font.
const DefaultCellSize = 13

// Options controls catalog construction.
type Options struct {
	// CellSize is the width and height in pixels of the square each glyph
	// is rendered into. It must equal the tile size the image is cut into.
	CellSize int

	// Normalization selects the luminance range used to rescale the set.
	// Use the same value as the converter.
	Normalization typist.Normalization
}

// Build renders runes with face and returns the normalized catalog entries
// sorted ascending by luminance. Duplicate runes are dropped and runes the
// face has no glyph for are skipped, except the space which always renders
// as a blank cell.
func Build(face font.Face, runes []rune, opts Options) ([]typist.GlyphEntry, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", opts.CellSize)
	}

	log := typist.Logger()
	seen := make(map[rune]bool, len(runes))
	entries := make([]typist.GlyphEntry, 0, len(runes))
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := face.GlyphAdvance(r); !ok && r != ' ' {
			log.Debug("skipping rune without glyph", "rune", string(r))
			continue
		}
		features := Render(face, r, opts.CellSize)
		entries = append(entries, typist.GlyphEntry{
			Character: r,
			Luminance: stat.Mean(features, nil),
			Features:  features,
		})
	}

	normalizeEntries(entries, opts.Normalization)
	typist.SortEntries(entries)

	if len(entries) > 0 {
		log.Debug("built glyph catalog",
			"entries", len(entries), "cell_size", opts.CellSize,
			"darkest", string(entries[0].Character),
			"lightest", string(entries[len(entries)-1].Character))
	}
	return entries, nil
}

// Default builds a catalog of the printable ASCII characters with the
// 7x13 bitmap font bundled in golang.org/x/image.
func Default(norm typist.Normalization) []typist.GlyphEntry {
	entries, err := Build(basicfont.Face7x13, DefaultRunes(), Options{
		CellSize:      DefaultCellSize,
		Normalization: norm,
	})
	if err != nil {
		// Only reachable with a non-positive cell size.
		panic(err)
	}
	return entries
}

// Render draws r in black, centered on a white cell x cell square, and
// returns the luminance of every pixel in row-major order.
func Render(face font.Face, r rune, cell int) []float64 {
	img := image.NewGray(image.Rect(0, 0, cell, cell))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	s := string(r)
	metrics := face.Metrics()
	advance := font.MeasureString(face, s).Round()
	x := (cell - advance) / 2
	y := (cell-metrics.Height.Round())/2 + metrics.Ascent.Round()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)

	features := make([]float64, 0, cell*cell)
	for py := 0; py < cell; py++ {
		for px := 0; px < cell; px++ {
			v := img.GrayAt(px, py).Y
			features = append(features, typist.Luminance(v, v, v))
		}
	}
	return features
}

// normalizeEntries rescales entries in place with the converter's
// normalizer so catalog and tiles share one convention.
func normalizeEntries(entries []typist.GlyphEntry, norm typist.Normalization) {
	tiles := make([]typist.TileFeature, len(entries))
	for i, e := range entries {
		tiles[i] = typist.TileFeature{Luminance: e.Luminance, Features: e.Features}
	}
	if norm == typist.PixelRange {
		typist.NormalizePixels(tiles)
	} else {
		typist.Normalize(tiles)
	}
	for i := range entries {
		entries[i].Luminance = tiles[i].Luminance
	}
}
