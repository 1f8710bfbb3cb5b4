package typist

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/wbrown/typist/imageutil"
)

// Tile partitions img into a grid of square tiles, columns wide, and
// returns one raw feature vector per tile in row-major order
// (index = row*columns + col).
//
// The tile size is W/columns and the row count H/tileSize; pixels beyond
// columns*tileSize or rows*tileSize are dropped. Each feature holds the
// BT.601 luminance of every pixel in the tile, row-major within the tile.
func Tile(img image.Image, columns int) (Grid, []TileFeature, error) {
	grid, err := gridFor(img, columns)
	if err != nil {
		return Grid{}, nil, err
	}

	sample := pixelSampler(img)
	origin := img.Bounds().Min
	size := grid.TileSize

	tiles := make([]TileFeature, 0, grid.Tiles())
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			x0 := origin.X + col*size
			y0 := origin.Y + row*size
			features := make([]float64, 0, size*size)
			for dy := 0; dy < size; dy++ {
				for dx := 0; dx < size; dx++ {
					features = append(features, sample(x0+dx, y0+dy))
				}
			}
			tiles = append(tiles, TileFeature{
				Luminance: stat.Mean(features, nil),
				Features:  features,
			})
		}
	}
	return grid, tiles, nil
}

// gridFor derives the tiling geometry and rejects configurations that
// cannot produce a single tile.
func gridFor(img image.Image, columns int) (Grid, error) {
	if img == nil {
		return Grid{}, fmt.Errorf("%w: nil image", ErrInvalidConfiguration)
	}
	if columns <= 0 {
		return Grid{}, fmt.Errorf("%w: columns must be positive, got %d",
			ErrInvalidConfiguration, columns)
	}
	b := img.Bounds()
	tileSize := b.Dx() / columns
	if tileSize == 0 {
		return Grid{}, fmt.Errorf("%w: image width %d too small for %d columns",
			ErrInvalidConfiguration, b.Dx(), columns)
	}
	rows := b.Dy() / tileSize
	if rows == 0 {
		return Grid{}, fmt.Errorf("%w: image height %d shorter than tile size %d",
			ErrInvalidConfiguration, b.Dy(), tileSize)
	}
	return Grid{Columns: columns, Rows: rows, TileSize: tileSize}, nil
}

// pixelSampler returns a luminance lookup for img, reading the pixel
// buffer directly for RGBA images.
func pixelSampler(img image.Image) func(x, y int) float64 {
	switch src := img.(type) {
	case *imageutil.RGBAImage:
		return rgbaSampler(src.RGBA)
	case *image.RGBA:
		return rgbaSampler(src)
	case *image.Gray:
		return func(x, y int) float64 {
			v := src.GrayAt(x, y).Y
			return Luminance(v, v, v)
		}
	}
	return func(x, y int) float64 {
		c := imageutil.RGBFromColor(img.At(x, y))
		return Luminance(c.R, c.G, c.B)
	}
}

func rgbaSampler(img *image.RGBA) func(x, y int) float64 {
	return func(x, y int) float64 {
		c := img.RGBAAt(x, y)
		return Luminance(c.R, c.G, c.B)
	}
}
