// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// DefaultViewBox is the viewBox written when an SVG root carries none.
// The trait renderer draws on a 420x420 canvas.
const DefaultViewBox = "0 0 420 420"

const (
	// DefaultInputDir is the input subdirectory under the base directory.
	DefaultInputDir = "basicPhilPaths"
	// DefaultOutputDir is the output subdirectory under the base directory.
	DefaultOutputDir = "basicPhilPaths_json"
)

// ConversionConfig holds settings for the SVG-to-JSON conversion run.
type ConversionConfig struct {
	// BaseDir anchors relative InputDir and OutputDir values
	// (default <home>/Desktop).
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// InputDir holds the *.svg files. Relative paths resolve against BaseDir.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one JSON file per SVG. Relative paths resolve
	// against BaseDir. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DefaultViewBox replaces a missing root viewBox attribute.
	DefaultViewBox string `json:"default_viewbox" yaml:"default_viewbox"`

	// ReportPath, when set, receives a YAML summary of the run.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}

// ResolvedInputDir returns InputDir anchored at BaseDir when relative.
func (c ConversionConfig) ResolvedInputDir() string {
	return resolve(c.BaseDir, c.InputDir, DefaultInputDir)
}

// ResolvedOutputDir returns OutputDir anchored at BaseDir when relative.
func (c ConversionConfig) ResolvedOutputDir() string {
	return resolve(c.BaseDir, c.OutputDir, DefaultOutputDir)
}

// ViewBoxOrDefault returns the configured default viewBox, falling back to
// DefaultViewBox.
func (c ConversionConfig) ViewBoxOrDefault() string {
	if c.DefaultViewBox == "" {
		return DefaultViewBox
	}
	return c.DefaultViewBox
}

func resolve(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) || base == "" {
		return dir
	}
	return filepath.Join(base, dir)
}

// CatalogConfig holds settings for the SQLite trait catalog.
type CatalogConfig struct {
	// Path is the SQLite database file. An empty path disables the catalog.
	Path string `json:"path" yaml:"path"`
}

// Enabled reports whether a catalog path is configured.
func (c CatalogConfig) Enabled() bool {
	return c.Path != ""
}
