package imageutil

import "image/color"

// luma returns the BT.601 luminance of c in [0, 1]:
// Y = 0.299*R + 0.587*G + 0.114*B.
func luma(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// LuminanceRange returns the minimum and maximum per-pixel luminance of
// img in [0, 1]. An empty image yields (0, 0).
func LuminanceRange(img *RGBAImage) (lo, hi float64) {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return 0, 0
	}
	lo, hi = 1, 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := luma(img.RGBAAt(x, y))
			if l < lo {
				lo = l
			}
			if l > hi {
				hi = l
			}
		}
	}
	return lo, hi
}

// ToGrayscale converts an RGBA image to an 8-bit grayscale RGBA image
// using the BT.601 weights, matching the luminance typist computes per
// pixel.
func ToGrayscale(img *RGBAImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	gray := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.GetRGB(x, y)
			// Integer math, scaled by 1000 and rounded.
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			v := uint8(lum)
			gray.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return gray
}
