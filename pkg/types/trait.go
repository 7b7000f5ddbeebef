// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one SVG file.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// TraitPaths is the JSON document written for each SVG. Field order is the
// on-disk key order.
type TraitPaths struct {
	// PathData is every SVG path "d" value joined by spaces and cleaned.
	PathData string `json:"pathData" yaml:"path_data"`

	// ViewBox is the root viewBox attribute, or the default.
	ViewBox string `json:"viewBox" yaml:"view_box"`
}

// CatalogEntry is one converted trait as recorded in the catalog.
type CatalogEntry struct {
	// Name is the input base name without extension (e.g. "phil_common").
	Name string `json:"name" yaml:"name"`

	PathData string `json:"pathData" yaml:"path_data"`
	ViewBox  string `json:"viewBox" yaml:"view_box"`

	// SourcePath is the SVG file the entry was converted from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// SourceSHA256 is the hex digest of the SVG bytes at conversion time.
	SourceSHA256 string `json:"source_sha256" yaml:"source_sha256"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
