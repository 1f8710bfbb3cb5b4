package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbrown/typist"
	"github.com/wbrown/typist/imageutil"
	"github.com/wbrown/typist/internal/config"
	"github.com/wbrown/typist/internal/output"
)

var (
	convertGlyphs glyphFlags

	convertOutput   string
	convertFormat   string
	convertColumns  int
	convertWindow   int
	convertWorkers  int
	convertFallback string
	convertCatalog  string
	convertInterp   string

	convertGrayscale bool
	convertBlur      float32
	convertContrast  float32
	convertSharpen   float32
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert an image to typist art",
	Long: `Convert an image (PNG, JPEG, GIF or TIFF) to typist art.

The image is resized so that each of the requested columns is exactly one
glyph cell wide, then every cell is matched against the glyph catalog.
Output goes to stdout unless -o is given; the html format defaults to
typistArt.html.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	fs := convertCmd.Flags()
	fs.StringVarP(&convertOutput, "output", "o", "", "output file")
	fs.StringVarP(&convertFormat, "format", "f", "", "output format: text, html, json, yaml")
	fs.IntVarP(&convertColumns, "columns", "n", 0, "characters per row")
	fs.IntVar(&convertWindow, "window", 0, "catalog entries compared per tile")
	fs.IntVar(&convertWorkers, "workers", 0, "matching goroutines (0 = all CPUs)")
	fs.StringVar(&convertFallback, "fallback", "", "character for unmatched tiles")
	fs.StringVar(&convertCatalog, "catalog", "", "prebuilt catalog file (.json, .msgpack, .glyphs)")
	fs.StringVar(&convertInterp, "interpolation", "", "resize filter: area, linear, nearest")
	fs.BoolVar(&convertGrayscale, "grayscale", false, "convert to grayscale before filtering")
	fs.Float32Var(&convertBlur, "blur", 0, "gaussian blur sigma")
	fs.Float32Var(&convertContrast, "contrast", 0, "contrast adjustment in [-100, 100]")
	fs.Float32Var(&convertSharpen, "sharpen", 0, "unsharp mask sigma")
	convertGlyphs.register(convertCmd)

	rootCmd.AddCommand(convertCmd)
}

// convertConfig merges the config file with the flags the user set.
func convertConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format = convertFormat
	}
	if fs.Changed("columns") {
		cfg.Columns = convertColumns
	}
	if fs.Changed("window") {
		cfg.Window = convertWindow
	}
	if fs.Changed("workers") {
		cfg.Workers = convertWorkers
	}
	if fs.Changed("fallback") {
		cfg.Fallback = convertFallback
	}
	if fs.Changed("catalog") {
		cfg.Catalog = convertCatalog
	}
	if fs.Changed("interpolation") {
		cfg.Interpolation = convertInterp
	}
	if fs.Changed("grayscale") {
		cfg.Preprocess.Grayscale = convertGrayscale
	}
	if fs.Changed("blur") {
		cfg.Preprocess.Blur = convertBlur
	}
	if fs.Changed("contrast") {
		cfg.Preprocess.Contrast = convertContrast
	}
	if fs.Changed("sharpen") {
		cfg.Preprocess.Sharpen = convertSharpen
	}
	convertGlyphs.apply(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := typist.Logger()
	start := time.Now()

	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}
	norm, err := config.ParseNormalization(cfg.Normalization)
	if err != nil {
		return err
	}
	interp, err := imageutil.ParseInterpolation(cfg.Interpolation)
	if err != nil {
		return err
	}

	img, err := imageutil.LoadImage(args[0])
	if err != nil {
		return err
	}
	catalog, cell, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	endInit := time.Now()
	log.Info("initialized",
		"image", args[0], "width", img.Width(), "height", img.Height(),
		"glyphs", catalog.Len(), "cell_size", cell,
		"elapsed", endInit.Sub(start))

	fitted, err := imageutil.FitToCells(img, cfg.Columns, cell, interp)
	if err != nil {
		return fmt.Errorf("failed to fit image: %w", err)
	}
	fitted = imageutil.Prepare(fitted, imageutil.PrepareOptions{
		Grayscale: cfg.Preprocess.Grayscale,
		Blur:      cfg.Preprocess.Blur,
		Contrast:  cfg.Preprocess.Contrast,
		Sharpen:   cfg.Preprocess.Sharpen,
	})
	lo, hi := imageutil.LuminanceRange(fitted)
	log.Debug("image luminance range", "min", lo, "max", hi)

	conv := typist.NewConverter(catalog,
		typist.WithColumns(cfg.Columns),
		typist.WithWindow(cfg.Window),
		typist.WithFallback(cfg.FallbackRune()),
		typist.WithWorkers(cfg.Workers),
		typist.WithNormalization(norm),
	)
	res, err := conv.Convert(cmd.Context(), fitted)
	if err != nil {
		return err
	}
	log.Info("computation finished",
		"columns", res.Columns, "rows", res.Grid.Rows,
		"diagnostics", len(res.Diagnostics),
		"elapsed", time.Since(endInit))

	format := output.Format(cfg.Format)
	if convertOutput == "" && format != output.FormatHTML {
		return output.Write(cmd.OutOrStdout(), res, format)
	}
	path := convertOutput
	if path == "" {
		path = output.DefaultHTMLFile
	}
	if err := output.WriteFile(path, res, format); err != nil {
		return err
	}
	log.Info("output written", "path", path)
	return nil
}
