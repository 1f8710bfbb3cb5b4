// Package config loads the typist conversion settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/goccy/go-yaml"

	"github.com/wbrown/typist"
	"github.com/wbrown/typist/glyphset"
	"github.com/wbrown/typist/imageutil"
)

// Config holds everything needed to run a conversion. Zero-valued fields
// in a file keep their defaults.
type Config struct {
	// Columns is the number of characters per output row.
	Columns int `yaml:"columns"`

	// Window is the number of catalog entries compared per tile.
	Window int `yaml:"window"`

	// Fallback is the single character used for tiles that cannot be
	// matched.
	Fallback string `yaml:"fallback"`

	// Workers is the number of matching goroutines (0 = GOMAXPROCS).
	Workers int `yaml:"workers"`

	// Normalization is "tile" or "pixel".
	Normalization string `yaml:"normalization"`

	// Catalog is a prebuilt catalog file (.json, .msgpack, .glyphs). When
	// empty the catalog is built from Font and Chars.
	Catalog string `yaml:"catalog,omitempty"`

	// Font is a TrueType font file. When empty the built-in 7x13 bitmap
	// font is used.
	Font string `yaml:"font,omitempty"`

	// FontSize is the TrueType point size. Defaults to the cell size.
	FontSize float64 `yaml:"font_size,omitempty"`

	// CellSize is the glyph cell and tile edge in pixels.
	CellSize int `yaml:"cell_size"`

	// Chars is a file of extra characters to add to the catalog.
	Chars string `yaml:"chars,omitempty"`

	// Interpolation is the resize filter used to fit the image onto the
	// cell grid: area, linear or nearest.
	Interpolation string `yaml:"interpolation"`

	// Format is the output format: text, html, json or yaml.
	Format string `yaml:"format"`

	Preprocess Preprocess `yaml:"preprocess,omitempty"`
}

// Preprocess configures the image filters applied before tiling.
type Preprocess struct {
	Grayscale bool    `yaml:"grayscale,omitempty"`
	Blur      float32 `yaml:"blur,omitempty"`
	Contrast  float32 `yaml:"contrast,omitempty"`
	Sharpen   float32 `yaml:"sharpen,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Columns:       typist.DefaultColumns,
		Window:        typist.DefaultWindow,
		Fallback:      string(typist.DefaultFallback),
		Normalization: typist.TileRange.String(),
		CellSize:      glyphset.DefaultCellSize,
		Interpolation: imageutil.InterpolationArea.String(),
		Format:        "text",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", c.Columns)
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", c.Window)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if utf8.RuneCountInString(c.Fallback) != 1 {
		return fmt.Errorf("fallback must be a single character, got %q", c.Fallback)
	}
	if _, err := ParseNormalization(c.Normalization); err != nil {
		return err
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %d", c.CellSize)
	}
	if _, err := imageutil.ParseInterpolation(c.Interpolation); err != nil {
		return err
	}
	if c.FontSize < 0 {
		return fmt.Errorf("font_size must not be negative, got %g", c.FontSize)
	}
	switch c.Format {
	case "text", "html", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	p := c.Preprocess
	if p.Blur < 0 || p.Sharpen < 0 {
		return fmt.Errorf("blur and sharpen must not be negative")
	}
	if p.Contrast < -100 || p.Contrast > 100 {
		return fmt.Errorf("contrast must be within [-100, 100], got %g", p.Contrast)
	}
	return nil
}

// FallbackRune returns the fallback glyph. Validate guarantees it holds
// exactly one rune.
func (c *Config) FallbackRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Fallback)
	return r
}

// PointSize returns the TrueType size to render with.
func (c *Config) PointSize() float64 {
	if c.FontSize > 0 {
		return c.FontSize
	}
	return float64(c.CellSize)
}

// ParseNormalization maps "tile" and "pixel" to their typist values.
func ParseNormalization(s string) (typist.Normalization, error) {
	switch s {
	case typist.TileRange.String(), "":
		return typist.TileRange, nil
	case typist.PixelRange.String():
		return typist.PixelRange, nil
	}
	return 0, fmt.Errorf("unknown normalization %q (want tile or pixel)", s)
}
