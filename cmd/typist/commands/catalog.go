package commands

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/wbrown/typist/glyphset"
)

var (
	catalogGlyphs glyphFlags
	catalogOutput string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build and inspect glyph catalogs",
}

var catalogBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render a glyph catalog to a file",
	Long: `Render the printable ASCII characters, plus any characters listed in
--chars, and write the sorted catalog to -o. The file extension selects
the encoding: .json, .msgpack or .glyphs (gzip-compressed gob).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogOutput == "" {
			return fmt.Errorf("output file is required (-o)")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalogGlyphs.apply(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		entries, err := buildEntries(cfg)
		if err != nil {
			return err
		}
		if err := glyphset.Save(catalogOutput, entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d glyphs (%s) to %s\n",
			len(entries), glyphset.FormatFromPath(catalogOutput), catalogOutput)
		return nil
	},
}

// catalogSummary is printed by catalog inspect.
type catalogSummary struct {
	Path       string `yaml:"path"`
	Format     string `yaml:"format"`
	Entries    int    `yaml:"entries"`
	FeatureLen int    `yaml:"feature_len"`
	CellSize   int    `yaml:"cell_size,omitempty"`
	Darkest    string `yaml:"darkest,omitempty"`
	Lightest   string `yaml:"lightest,omitempty"`
}

var catalogInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Validate a catalog file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := glyphset.Load(args[0])
		if err != nil {
			return err
		}
		summary := catalogSummary{
			Path:       args[0],
			Format:     glyphset.FormatFromPath(args[0]).String(),
			Entries:    catalog.Len(),
			FeatureLen: catalog.FeatureLen(),
		}
		if n := catalog.Len(); n > 0 {
			summary.Darkest = string(catalog.Entry(0).Character)
			summary.Lightest = string(catalog.Entry(n - 1).Character)
			if cell, err := cellSizeOf(catalog); err == nil {
				summary.CellSize = cell
			}
		}
		data, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to format summary: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	catalogBuildCmd.Flags().StringVarP(&catalogOutput, "output", "o", "", "catalog file to write")
	catalogGlyphs.register(catalogBuildCmd)

	catalogCmd.AddCommand(catalogBuildCmd)
	catalogCmd.AddCommand(catalogInspectCmd)
	rootCmd.AddCommand(catalogCmd)
}
