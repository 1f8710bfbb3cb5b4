package imageutil

import (
	"github.com/disintegration/gift"
)

// PrepareOptions selects the filters applied before tiling. The zero
// value applies none.
type PrepareOptions struct {
	// Grayscale converts to BT.601 gray first.
	Grayscale bool

	// Blur is the Gaussian blur sigma in pixels (0 = off).
	Blur float32

	// Contrast adjusts contrast in percent, -100..100 (0 = off).
	Contrast float32

	// Sharpen applies an unsharp mask with this sigma (0 = off).
	Sharpen float32
}

// enabled reports whether any gift filter is requested.
func (o PrepareOptions) enabled() bool {
	return o.Blur > 0 || o.Contrast != 0 || o.Sharpen > 0
}

// Prepare applies the requested filters to img and returns a new image.
// The input is left untouched.
//
// Typical use is to fit the image onto the glyph grid first (FitToCells)
// and then prepare it, so the filters work at the resolution that is
// actually sampled.
func Prepare(img *RGBAImage, opts PrepareOptions) *RGBAImage {
	out := img
	if opts.Grayscale {
		out = ToGrayscale(out)
	}
	if !opts.enabled() {
		if out == img {
			return img.Clone()
		}
		return out
	}

	var filters []gift.Filter
	if opts.Blur > 0 {
		filters = append(filters, gift.GaussianBlur(opts.Blur))
	}
	if opts.Contrast != 0 {
		filters = append(filters, gift.Contrast(opts.Contrast))
	}
	if opts.Sharpen > 0 {
		filters = append(filters, gift.UnsharpMask(opts.Sharpen, 1, 0))
	}

	g := gift.New(filters...)
	b := g.Bounds(out.Bounds())
	dst := NewRGBAImage(b.Dx(), b.Dy())
	g.Draw(dst.RGBA, out.RGBA)
	return dst
}
