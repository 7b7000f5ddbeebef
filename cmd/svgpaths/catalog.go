// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/svgpaths/internal/catalog"
	"github.com/pdiddy/svgpaths/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the SQLite catalog of converted traits",
	Long: `Catalog reads the SQLite database that "convert --catalog" maintains.
Use subcommands to list recorded traits or export them.`,
}

var catalogFlagKeys = map[string]string{
	"catalog.path": "catalog",
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded traits",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogList(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatCatalogList(w io.Writer, entries []types.CatalogEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No traits recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-24s  %-16s  %-8s  %s\n", "Name", "ViewBox", "Length", "Converted")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, e := range entries {
		name := e.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Fprintf(w, "%-24s  %-16s  %-8d  %s\n",
			name, e.ViewBox, len(e.PathData), e.ConvertedAt.UTC().Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(w, "\n%d traits\n", len(entries))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes every recorded trait to stdout, or to --output when set,
in YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = store.ExportYAML(cmd.Context(), w)
	case "json":
		err = store.ExportJSON(cmd.Context(), w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		logger.Info("catalog exported", "path", outPath, "format", format)
	}
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	if err := bindFlags(cmd.Flags(), catalogFlagKeys); err != nil {
		return nil, err
	}
	cfg := types.CatalogConfig{Path: viper.GetString("catalog.path")}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("catalog path required: set --catalog or catalog.path")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", cfg.Path, err)
	}
	return catalog.NewStore(cfg)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog", "", "SQLite catalog database written by convert --catalog")

	catalogListCmd.Flags().Bool("json", false, "output entries as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("output", "", "write the export to this file instead of stdout")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
