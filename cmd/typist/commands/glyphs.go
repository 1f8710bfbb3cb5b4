package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/wbrown/typist"
	"github.com/wbrown/typist/glyphset"
	"github.com/wbrown/typist/internal/config"
)

// glyphFlags are the catalog source flags shared by convert and
// catalog build.
type glyphFlags struct {
	font          string
	fontSize      float64
	chars         string
	cellSize      int
	normalization string
}

func (f *glyphFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.font, "font", "", "TrueType font file (default: built-in 7x13)")
	fs.Float64Var(&f.fontSize, "font-size", 0, "font point size (default: cell size)")
	fs.StringVar(&f.chars, "chars", "", "file of extra characters to include")
	fs.IntVar(&f.cellSize, "cell-size", 0, "glyph cell size in pixels")
	fs.StringVar(&f.normalization, "normalization", "", "luminance range: tile or pixel")
}

// apply copies the flags the user set over cfg.
func (f *glyphFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("font") {
		cfg.Font = f.font
	}
	if fs.Changed("font-size") {
		cfg.FontSize = f.fontSize
	}
	if fs.Changed("chars") {
		cfg.Chars = f.chars
	}
	if fs.Changed("cell-size") {
		cfg.CellSize = f.cellSize
	}
	if fs.Changed("normalization") {
		cfg.Normalization = f.normalization
	}
}

// buildEntries renders the catalog described by cfg: the printable ASCII
// set plus any runes from cfg.Chars, drawn with cfg.Font or the built-in
// bitmap font.
func buildEntries(cfg *config.Config) ([]typist.GlyphEntry, error) {
	norm, err := config.ParseNormalization(cfg.Normalization)
	if err != nil {
		return nil, err
	}

	runes := glyphset.DefaultRunes()
	if cfg.Chars != "" {
		extra, err := glyphset.LoadRunes(cfg.Chars)
		if err != nil {
			return nil, err
		}
		runes = append(runes, extra...)
	}

	var face font.Face = basicfont.Face7x13
	if cfg.Font != "" {
		ttf, err := glyphset.LoadFace(cfg.Font, cfg.PointSize())
		if err != nil {
			return nil, err
		}
		defer ttf.Close()
		face = ttf
	}

	return glyphset.Build(face, runes, glyphset.Options{
		CellSize:      cfg.CellSize,
		Normalization: norm,
	})
}

// loadCatalog returns the catalog for a conversion and the cell size its
// features were rendered at. A prebuilt cfg.Catalog takes precedence over
// building one.
func loadCatalog(cfg *config.Config) (*typist.Catalog, int, error) {
	if cfg.Catalog == "" {
		entries, err := buildEntries(cfg)
		if err != nil {
			return nil, 0, err
		}
		return typist.NewCatalog(entries), cfg.CellSize, nil
	}

	catalog, err := glyphset.Load(cfg.Catalog)
	if err != nil {
		return nil, 0, err
	}
	if catalog.Len() == 0 {
		// Converts to fallback glyphs; only the configured geometry matters.
		return catalog, cfg.CellSize, nil
	}
	cell, err := cellSizeOf(catalog)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", cfg.Catalog, err)
	}
	return catalog, cell, nil
}

// cellSizeOf recovers the square cell edge from the catalog's feature
// length.
func cellSizeOf(c *typist.Catalog) (int, error) {
	n := c.FeatureLen()
	if n == 0 {
		return 0, fmt.Errorf("catalog has no usable features")
	}
	cell := int(math.Round(math.Sqrt(float64(n))))
	if cell*cell != n {
		return 0, fmt.Errorf("feature length %d is not a square cell", n)
	}
	return cell, nil
}
