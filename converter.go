package typist

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultColumns is the number of characters per output row used when no
// column count is configured.
const DefaultColumns = 32

// Converter turns images into typist art against a fixed glyph catalog.
//
// Every call to Convert works on its own tiles, pool and results; the
// Converter itself is never modified after NewConverter and may be shared
// by concurrent callers.
type Converter struct {
	catalog       *Catalog
	columns       int
	window        int
	fallback      rune
	workers       int
	normalization Normalization
}

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// WithColumns sets the number of characters per row.
func WithColumns(n int) Option {
	return func(c *Converter) {
		c.columns = n
	}
}

// WithWindow sets the candidate window size of the refined search.
func WithWindow(w int) Option {
	return func(c *Converter) {
		c.window = w
	}
}

// WithFallback sets the glyph used when a tile cannot be matched.
func WithFallback(r rune) Option {
	return func(c *Converter) {
		c.fallback = r
	}
}

// WithWorkers sets the number of matching goroutines (0 = GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithNormalization selects the luminance range used to normalize tiles.
// It must match the convention the catalog was built with.
func WithNormalization(n Normalization) Option {
	return func(c *Converter) {
		c.normalization = n
	}
}

// NewConverter creates a Converter for catalog with the given options.
// Defaults: 32 columns, window 16, space fallback, GOMAXPROCS workers,
// tile-mean normalization.
func NewConverter(catalog *Catalog, opts ...Option) *Converter {
	c := &Converter{
		catalog:       catalog,
		columns:       DefaultColumns,
		window:        DefaultWindow,
		fallback:      DefaultFallback,
		normalization: TileRange,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one conversion.
type Result struct {
	Grid
	Rows        []string
	Matches     []MatchResult
	Diagnostics []Diagnostic
}

// String returns the rows joined by newlines.
func (r *Result) String() string {
	return strings.Join(r.Rows, "\n")
}

// Convert renders img as typist art.
//
// Only ErrInvalidConfiguration (checked before any work is dispatched) and
// context cancellation are returned as errors. An empty catalog, a catalog
// whose glyph cells do not match the tile size, or a failing tile
// degrades to the fallback glyph and is reported in
// Result.Diagnostics, so a successful result always has exactly
// Rows x Columns characters.
func (c *Converter) Convert(ctx context.Context, img image.Image) (*Result, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidConfiguration)
	}
	start := time.Now()

	grid, tiles, err := Tile(img, c.columns)
	if err != nil {
		return nil, err
	}
	lo, hi := normalizeAs(c.normalization, tiles)

	log := Logger()
	log.Debug("tiled image",
		"columns", grid.Columns, "rows", grid.Rows, "tile_size", grid.TileSize,
		"normalization", c.normalization.String(),
		"luminance_min", lo, "luminance_max", hi)

	matcher := NewMatcher(c.catalog,
		WithMatchWindow(c.window), WithMatchFallback(c.fallback))

	chars := make([]rune, len(tiles))
	var diags []Diagnostic

	featureLen, want := c.catalog.FeatureLen(), grid.TileSize*grid.TileSize
	switch {
	case c.catalog.Len() == 0:
		fillFallback(chars, matcher.Fallback())
		diags = append(diags, Diagnostic{
			Kind: DiagnosticEmptyCatalog, Tile: -1, Err: ErrEmptyCatalog,
		})
	case featureLen != 0 && featureLen != want:
		// Every candidate would be skipped as not comparable.
		fillFallback(chars, matcher.Fallback())
		diags = append(diags, Diagnostic{
			Kind: DiagnosticIncomparable, Tile: -1,
			Err: fmt.Errorf("%w: catalog has %d features, tiles have %d",
				ErrFeatureMismatch, featureLen, want),
		})
	default:
		var mu sync.Mutex
		pool := newWorkerPool(c.workers)
		err := pool.execute(ctx, len(tiles), func(i int) {
			r, taskErr := matchTile(matcher, i, tiles[i])
			chars[i] = r
			if taskErr != nil {
				mu.Lock()
				diags = append(diags, Diagnostic{
					Kind: DiagnosticTaskFailure, Tile: i, Err: taskErr,
				})
				mu.Unlock()
			}
		})
		if err != nil {
			log.Debug("conversion cancelled", "err", err)
			return nil, err
		}
	}

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Tile < diags[j].Tile })
	for _, d := range diags {
		log.Warn("recovered during conversion", "kind", d.Kind.String(), "tile", d.Tile, "err", d.Err)
	}

	matches := make([]MatchResult, len(chars))
	for i, r := range chars {
		matches[i] = MatchResult{Tile: i, Character: r}
	}

	log.Debug("conversion finished", "tiles", len(tiles), "elapsed", time.Since(start))

	return &Result{
		Grid:        grid,
		Rows:        Assemble(chars, grid.Columns),
		Matches:     matches,
		Diagnostics: diags,
	}, nil
}

// errMalformedTile is the cause recorded for tiles whose features cannot
// be correlated.
var errMalformedTile = errors.New("malformed feature vector")

// matchTile runs one tile's task. A malformed tile or a panic inside the
// matcher is turned into a TaskError and the fallback glyph.
func matchTile(m *Matcher, i int, tile TileFeature) (r rune, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = m.Fallback()
			err = &TaskError{Tile: i, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	if !finite(tile.Luminance) {
		return m.Fallback(), &TaskError{Tile: i, Err: errMalformedTile}
	}
	for _, v := range tile.Features {
		if !finite(v) {
			return m.Fallback(), &TaskError{Tile: i, Err: errMalformedTile}
		}
	}
	return m.Match(tile), nil
}

func fillFallback(chars []rune, r rune) {
	for i := range chars {
		chars[i] = r
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
