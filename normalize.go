package typist

import (
	"gonum.org/v1/gonum/floats"
)

// Normalization selects the luminance range tile features are rescaled
// against.
type Normalization int

const (
	// TileRange rescales against the min/max of the tile means.
	TileRange Normalization = iota

	// PixelRange rescales against the min/max of every individual pixel
	// sample.
	PixelRange
)

func (n Normalization) String() string {
	switch n {
	case TileRange:
		return "tile"
	case PixelRange:
		return "pixel"
	}
	return "unknown"
}

// Normalize rescales tiles in place into [0, 1] using the range of the
// tile means. Every mean and every feature component goes through the same
// affine map (v-min)/(max-min). A range below 1e-12 (a flat image) sets
// all values to zero. Normalize is idempotent.
func Normalize(tiles []TileFeature) (lo, hi float64) {
	if len(tiles) == 0 {
		return 0, 0
	}
	means := make([]float64, len(tiles))
	for i, t := range tiles {
		means[i] = t.Luminance
	}
	lo, hi = floats.Min(means), floats.Max(means)
	rescale(tiles, lo, hi)
	return lo, hi
}

// NormalizePixels is Normalize with the range taken over all individual
// pixel samples instead of the tile means.
func NormalizePixels(tiles []TileFeature) (lo, hi float64) {
	first := true
	for _, t := range tiles {
		if len(t.Features) == 0 {
			continue
		}
		tlo, thi := floats.Min(t.Features), floats.Max(t.Features)
		if first || tlo < lo {
			lo = tlo
		}
		if first || thi > hi {
			hi = thi
		}
		first = false
	}
	if first {
		return 0, 0
	}
	rescale(tiles, lo, hi)
	return lo, hi
}

// normalizeAs dispatches on the selected range.
func normalizeAs(mode Normalization, tiles []TileFeature) (lo, hi float64) {
	if mode == PixelRange {
		return NormalizePixels(tiles)
	}
	return Normalize(tiles)
}

func rescale(tiles []TileFeature, lo, hi float64) {
	span := hi - lo
	if span < epsilon {
		for i := range tiles {
			tiles[i].Luminance = 0
			for j := range tiles[i].Features {
				tiles[i].Features[j] = 0
			}
		}
		return
	}
	for i := range tiles {
		tiles[i].Luminance = (tiles[i].Luminance - lo) / span
		f := tiles[i].Features
		for j := range f {
			f[j] = (f[j] - lo) / span
		}
	}
}
