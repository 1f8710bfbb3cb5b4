package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wbrown/typist"
	"github.com/wbrown/typist/internal/config"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "typist",
	Short: "Render images as typist art",
	Long: `typist - Render bitmap images as rows of text characters.

The image is cut into square tiles, one per output character, and each
tile is replaced by the glyph whose rendered shape correlates best with it.

Settings are read from an optional YAML file (--config) and can be
overridden per invocation with flags.

Examples:
  # Convert with the built-in ASCII catalog
  typist convert photo.png

  # 80 columns, HTML page, TrueType font with extra characters
  typist convert photo.jpg -n 80 --format html --font NotoSansMono.ttf --chars kana.txt

  # Prebuild a catalog once and reuse it
  typist catalog build -o glyphs.msgpack --font NotoSansMono.ttf
  typist convert photo.png --catalog glyphs.msgpack`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)
	},
}

// Execute runs the root command. An interrupt cancels the running
// conversion.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
}

// setupLogger routes typist's logs to the command's stderr. Debug records
// are shown with --verbose.
func setupLogger(cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	typist.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
}

// loadConfig returns the --config file, or the defaults when none is
// given.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
