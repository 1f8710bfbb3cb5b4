package imageutil

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) String() string {
	switch interp {
	case InterpolationArea:
		return "area"
	case InterpolationLinear:
		return "linear"
	case InterpolationNearest:
		return "nearest"
	}
	return fmt.Sprintf("Interpolation(%d)", int(interp))
}

// ParseInterpolation maps "area", "linear" and "nearest" to their values.
// The empty string selects InterpolationArea.
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "area", "":
		return InterpolationArea, nil
	case "linear":
		return InterpolationLinear, nil
	case "nearest":
		return InterpolationNearest, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q (want area, linear or nearest)", s)
}

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	}
	return draw.CatmullRom
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeToWidth resizes an image to the specified width while maintaining
// aspect ratio. The height is rounded down.
func ResizeToWidth(img *RGBAImage, width int, interp Interpolation) *RGBAImage {
	height := width * img.Height() / img.Width()
	return Resize(img, width, height, interp)
}

// FitToCells resizes img so that it is exactly columns cells of
// cell x cell pixels wide, keeping the aspect ratio, and crops the height
// down to a whole number of cells. Tiling the result with the same column
// count then yields tiles the size of the glyph cell.
func FitToCells(img *RGBAImage, columns, cell int, interp Interpolation) (*RGBAImage, error) {
	if columns <= 0 || cell <= 0 {
		return nil, fmt.Errorf("invalid cell grid %dx%d px", columns, cell)
	}
	if img.Width() == 0 || img.Height() == 0 {
		return nil, fmt.Errorf("empty image")
	}

	width := columns * cell
	resized := ResizeToWidth(img, width, interp)
	rows := resized.Height() / cell
	if rows == 0 {
		return nil, fmt.Errorf("image aspect ratio too wide for %d columns", columns)
	}
	if rows*cell == resized.Height() {
		return resized, nil
	}

	cropped := NewRGBAImage(width, rows*cell)
	draw.Draw(cropped.RGBA, cropped.Bounds(), resized.RGBA, image.Point{}, draw.Src)
	return cropped, nil
}
