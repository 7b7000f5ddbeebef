// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/svgpaths/internal/catalog"
	"github.com/pdiddy/svgpaths/internal/convert"
	"github.com/pdiddy/svgpaths/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every SVG in the input directory to path-data JSON",
	Long: `Convert reads each *.svg file in the input directory (non-recursive),
concatenates the "d" attribute of every SVG path element, strips fill
attributes, collapses whitespace and ".0" fractions, and writes
<name>.json with pathData and viewBox into the output directory.

A file that fails to convert is logged and skipped. A missing input
directory or an input directory without SVG files aborts the run.

Relative --input-dir and --output-dir values resolve against --base-dir.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

var convertFlagKeys = map[string]string{
	"conversion.base_dir":        "base-dir",
	"conversion.input_dir":       "input-dir",
	"conversion.output_dir":      "output-dir",
	"conversion.default_viewbox": "default-viewbox",
	"conversion.report":          "report",
	"conversion.catalog":         "catalog",
}

func init() {
	convertCmd.Flags().String("base-dir", "", "base directory for relative input/output dirs (default ~/Desktop)")
	convertCmd.Flags().String("input-dir", types.DefaultInputDir, "directory holding the *.svg files")
	convertCmd.Flags().String("output-dir", types.DefaultOutputDir, "directory for the JSON files (created if absent)")
	convertCmd.Flags().String("default-viewbox", types.DefaultViewBox, "viewBox written when an SVG root has none")
	convertCmd.Flags().String("report", "", "write a YAML run report to this file")
	convertCmd.Flags().String("catalog", "", "record converted traits in this SQLite database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Flags(), convertFlagKeys); err != nil {
		return err
	}

	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	result, err := convert.Run(cmd.Context(), convert.NewSVGConverter(cfg.ViewBoxOrDefault()), cfg, logger)
	if err != nil {
		return err
	}

	catCfg := types.CatalogConfig{Path: viper.GetString("conversion.catalog")}
	if !catCfg.Enabled() {
		return nil
	}

	store, err := catalog.NewStore(catCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordBatch(cmd.Context(), result, logger)
	return err
}

// conversionConfig assembles the run configuration from flags, environment,
// and config file. An unset base directory means <home>/Desktop.
func conversionConfig() (types.ConversionConfig, error) {
	base := viper.GetString("conversion.base_dir")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return types.ConversionConfig{}, fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, "Desktop")
	}

	return types.ConversionConfig{
		BaseDir:        base,
		InputDir:       viper.GetString("conversion.input_dir"),
		OutputDir:      viper.GetString("conversion.output_dir"),
		DefaultViewBox: viper.GetString("conversion.default_viewbox"),
		ReportPath:     viper.GetString("conversion.report"),
	}, nil
}
