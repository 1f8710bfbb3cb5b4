package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageAnchorsAndFlattens(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 22))
	src.SetNRGBA(10, 20, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	// (11, 20) stays fully transparent.

	img := RGBAImageFromImage(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Fatalf("Expected origin-anchored bounds, got %v", img.Bounds())
	}
	if img.Width() != 4 || img.Height() != 2 {
		t.Fatalf("Expected 4x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{}) {
		t.Errorf("Expected opaque black at origin, got %v", got)
	}
	if got := img.GetRGB(1, 0); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Transparent pixel should composite to white, got %v", got)
	}
}

func TestToGrayscale(t *testing.T) {
	img := NewRGBAImage(3, 1)
	img.SetRGB(0, 0, RGB{R: 255, G: 255, B: 255})
	img.SetRGB(1, 0, RGB{R: 0, G: 0, B: 0})
	img.SetRGB(2, 0, RGB{R: 255, G: 0, B: 0})

	gray := ToGrayscale(img)
	if v := gray.GetRGB(0, 0); v.R != 255 || v.G != 255 || v.B != 255 {
		t.Errorf("White pixel should convert to 255, got %v", v)
	}
	if v := gray.GetRGB(1, 0); v.R != 0 {
		t.Errorf("Black pixel should convert to 0, got %v", v)
	}
	// 0.299 * 255 = 76.245
	if v := gray.GetRGB(2, 0); v.R < 75 || v.R > 77 {
		t.Errorf("Red pixel should convert to ~76, got %d", v.R)
	}
}

func TestLuminanceRange(t *testing.T) {
	lo, hi := LuminanceRange(CreateGradientImage(16, 4))
	if lo != 0 {
		t.Errorf("Expected gradient minimum 0, got %f", lo)
	}
	if hi < 0.999 || hi > 1.001 {
		t.Errorf("Expected gradient maximum ~1, got %f", hi)
	}

	lo, hi = LuminanceRange(CreateSolidImage(8, 8, RGB{R: 128, G: 128, B: 128}))
	if lo != hi {
		t.Errorf("Solid image should have an empty range, got [%f, %f]", lo, hi)
	}

	lo, hi = LuminanceRange(NewRGBAImage(0, 0))
	if lo != 0 || hi != 0 {
		t.Errorf("Empty image should yield (0, 0), got (%f, %f)", lo, hi)
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	// Upscale
	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}

	resized = ResizeToWidth(CreateGradientImage(100, 55), 80, InterpolationNearest)
	if resized.Width() != 80 || resized.Height() != 44 {
		t.Errorf("Expected 80x44, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestFitToCells(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		columns, cell int
		wantW, wantH  int
	}{
		{"exact", 100, 50, 10, 8, 80, 40},
		{"cropped", 100, 55, 10, 8, 80, 40},
		{"upscaled", 20, 20, 4, 13, 52, 52},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fitted, err := FitToCells(CreateGradientImage(tt.width, tt.height), tt.columns, tt.cell, InterpolationArea)
			if err != nil {
				t.Fatalf("FitToCells failed: %v", err)
			}
			if fitted.Width() != tt.wantW || fitted.Height() != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, fitted.Width(), fitted.Height())
			}
		})
	}

	if _, err := FitToCells(CreateGradientImage(10, 10), 0, 8, InterpolationArea); err == nil {
		t.Error("Expected error for zero columns")
	}
	if _, err := FitToCells(CreateGradientImage(100, 2), 10, 8, InterpolationArea); err == nil {
		t.Error("Expected error when no full row of cells fits")
	}
}

func TestFitToCellsNearestKeepsSolidColor(t *testing.T) {
	gray := RGB{R: 128, G: 128, B: 128}
	fitted, err := FitToCells(CreateSolidImage(64, 64, gray), 8, 13, InterpolationNearest)
	if err != nil {
		t.Fatalf("FitToCells failed: %v", err)
	}
	if fitted.Width() != 104 || fitted.Height() != 104 {
		t.Fatalf("Expected 104x104, got %dx%d", fitted.Width(), fitted.Height())
	}
	for y := 0; y < fitted.Height(); y++ {
		for x := 0; x < fitted.Width(); x++ {
			if c := fitted.GetRGB(x, y); c != gray {
				t.Fatalf("Pixel (%d,%d) = %v, want %v", x, y, c, gray)
			}
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := map[string]Interpolation{
		"":        InterpolationArea,
		"area":    InterpolationArea,
		"linear":  InterpolationLinear,
		"nearest": InterpolationNearest,
	}
	for name, want := range tests {
		got, err := ParseInterpolation(name)
		if err != nil || got != want {
			t.Errorf("ParseInterpolation(%q) = %v, %v, want %v", name, got, err, want)
		}
		if name != "" && got.String() != name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}
	if _, err := ParseInterpolation("bicubic"); err == nil {
		t.Error("Expected error for unknown interpolation")
	}
}

func TestLumaUsesBT601Weights(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want float64
	}{
		{color.RGBA{R: 255, A: 255}, 0.299},
		{color.RGBA{G: 255, A: 255}, 0.587},
		{color.RGBA{B: 255, A: 255}, 0.114},
		{color.RGBA{A: 255}, 0},
		{color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1},
		{color.RGBA{R: 51, G: 102, B: 204, A: 255}, (0.299*51 + 0.587*102 + 0.114*204) / 255},
	}
	for _, tt := range tests {
		if got := luma(tt.c); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("luma(%v) = %.15f, want %.15f", tt.c, got, tt.want)
		}
	}

	// LuminanceRange reports on the same scale.
	lo, hi := LuminanceRange(CreateSolidImage(4, 4, RGB{R: 255}))
	if math.Abs(lo-0.299) > 1e-12 || math.Abs(hi-0.299) > 1e-12 {
		t.Errorf("LuminanceRange of pure red = [%v, %v], want 0.299", lo, hi)
	}
}

func TestPrepareWithoutFiltersCopies(t *testing.T) {
	img := CreateCheckerboardImage(16, 16, 4)
	out := Prepare(img, PrepareOptions{})
	if out == img {
		t.Fatal("Prepare should return a new image")
	}
	if mse := CalculateMSE(img, out); mse != 0 {
		t.Errorf("Expected identical pixels, MSE=%f", mse)
	}
}

func TestPrepareBlurSoftensEdges(t *testing.T) {
	img := CreateCheckerboardImage(32, 32, 4)
	out := Prepare(img, PrepareOptions{Blur: 1.5})
	if out.Width() != img.Width() || out.Height() != img.Height() {
		t.Fatalf("Blur should keep dimensions, got %dx%d", out.Width(), out.Height())
	}
	if mse := CalculateMSE(img, out); mse == 0 {
		t.Error("Blur should change a checkerboard")
	}
	// Original must be untouched.
	if img.GetRGB(0, 0) != (RGB{R: 255, G: 255, B: 255}) {
		t.Error("Prepare modified its input")
	}
}

func TestPrepareGrayscale(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{R: 255, G: 0, B: 0})
	out := Prepare(img, PrepareOptions{Grayscale: true})
	c := out.GetRGB(2, 2)
	if c.R != c.G || c.G != c.B {
		t.Errorf("Expected gray pixel, got %v", c)
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateGradientImage(64, 32)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SavePNG(img.RGBA, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	if mse := CalculateMSE(img, loaded); mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected decode error")
	}
}
