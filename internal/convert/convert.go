// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a directory of SVG files into one JSON file per SVG.
// Each file is converted independently: a failure is logged, recorded in the
// batch result, and the run moves on to the next file. Only setup failures
// (missing input directory, no SVG files) abort a run.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/svgpaths/pkg/types"
)

const (
	svgExt  = ".svg"
	jsonExt = ".json"
)

var (
	// ErrInputDirNotFound is returned when the input directory is missing.
	ErrInputDirNotFound = errors.New("input directory not found")

	// ErrNoSVGFiles is returned when the input directory holds no *.svg files.
	ErrNoSVGFiles = errors.New("no SVG files found in input directory")
)

// SetupError is a fatal, run-level failure. It wraps ErrInputDirNotFound or
// ErrNoSVGFiles together with the directory involved.
type SetupError struct {
	Dir string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Dir)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Converter reads one SVG file and returns its cleaned path data and viewBox.
type Converter interface {
	Convert(svgPath string) (types.TraitPaths, error)
}

// FileResult is the outcome of converting one SVG file.
type FileResult struct {
	// Name is the SVG base name without extension.
	Name string
	// Source is the SVG path.
	Source string
	// Output is the JSON path. Set only for converted files.
	Output string
	// Paths is the document written to Output.
	Paths  types.TraitPaths
	Status types.ConversionStatus
	Err    error
}

// BatchResult holds the outcome of a conversion run, one FileResult per
// input in processing order.
type BatchResult struct {
	Files     []FileResult
	Converted int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// LocateInputs lists the *.svg files directly inside inputDir, sorted by
// name. Subdirectories are not searched.
func LocateInputs(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SetupError{Dir: inputDir, Err: ErrInputDirNotFound}
		}
		return nil, fmt.Errorf("checking input directory %s: %w", inputDir, err)
	}
	if !info.IsDir() {
		return nil, &SetupError{Dir: inputDir, Err: ErrInputDirNotFound}
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", inputDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), svgExt) {
			continue
		}
		paths = append(paths, filepath.Join(inputDir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, &SetupError{Dir: inputDir, Err: ErrNoSVGFiles}
	}
	return paths, nil
}

// ConvertFile converts a single SVG and writes <outputDir>/<base>.json,
// replacing any existing file. Errors are logged and returned in the result.
func ConvertFile(c Converter, svgPath, outputDir string, log *slog.Logger) FileResult {
	name := strings.TrimSuffix(filepath.Base(svgPath), filepath.Ext(svgPath))
	if name == "" {
		// A file named ".svg" keeps its full name: ".svg.json".
		name = filepath.Base(svgPath)
	}
	res := FileResult{Name: name, Source: svgPath}

	fail := func(err error) FileResult {
		log.Error("conversion failed", "file", filepath.Base(svgPath), "err", err)
		res.Status = types.ConversionFailed
		res.Err = err
		return res
	}

	paths, err := c.Convert(svgPath)
	if err != nil {
		return fail(err)
	}

	outPath := filepath.Join(outputDir, name+jsonExt)
	if err := WriteJSON(outPath, paths); err != nil {
		return fail(err)
	}

	log.Info("converted", "file", filepath.Base(svgPath), "output", outPath)
	res.Status = types.ConversionDone
	res.Output = outPath
	res.Paths = paths
	return res
}

// ConvertBatch converts each SVG in order. It stops early only when ctx is
// cancelled, returning the partial result and ctx.Err().
func ConvertBatch(ctx context.Context, c Converter, svgPaths []string, outputDir string, log *slog.Logger) (BatchResult, error) {
	var result BatchResult
	for _, p := range svgPaths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		fr := ConvertFile(c, p, outputDir, log)
		switch fr.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionFailed:
			result.Failed++
		}
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

// Run performs a full conversion: it locates the inputs, creates the output
// directory, converts every file, and writes the optional report. The output
// directory is only created once inputs were found, so a failed setup leaves
// the filesystem untouched.
func Run(ctx context.Context, c Converter, cfg types.ConversionConfig, log *slog.Logger) (BatchResult, error) {
	inputDir := cfg.ResolvedInputDir()
	outputDir := cfg.ResolvedOutputDir()

	svgPaths, err := LocateInputs(inputDir)
	if err != nil {
		return BatchResult{}, err
	}
	log.Debug("located inputs", "input_dir", inputDir, "files", len(svgPaths))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	result, err := ConvertBatch(ctx, c, svgPaths, outputDir, log)
	if err != nil {
		return result, err
	}

	log.Info("conversion complete",
		"output_dir", outputDir,
		"converted", result.Converted,
		"failed", result.Failed,
		"total", result.Total())

	if cfg.ReportPath != "" {
		if err := WriteReport(cfg.ReportPath, NewReport(inputDir, outputDir, result)); err != nil {
			return result, err
		}
		log.Info("report written", "path", cfg.ReportPath)
	}

	return result, nil
}

// WriteJSON writes v as 2-space indented JSON. The data goes to a temporary
// file in the target directory first and is renamed into place, so readers
// never observe a partially written file.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
