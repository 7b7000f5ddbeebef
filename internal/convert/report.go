// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Report is the YAML summary of a conversion run.
type Report struct {
	InputDir  string       `json:"input_dir" yaml:"input_dir"`
	OutputDir string       `json:"output_dir" yaml:"output_dir"`
	Converted int          `json:"converted" yaml:"converted"`
	Failed    int          `json:"failed" yaml:"failed"`
	Total     int          `json:"total" yaml:"total"`
	Files     []ReportFile `json:"files" yaml:"files"`
}

// ReportFile is one file's line in a Report.
type ReportFile struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport builds a Report from a batch result.
func NewReport(inputDir, outputDir string, r BatchResult) Report {
	rep := Report{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Converted: r.Converted,
		Failed:    r.Failed,
		Total:     r.Total(),
		Files:     make([]ReportFile, len(r.Files)),
	}
	for i, f := range r.Files {
		rep.Files[i] = ReportFile{
			Name:   f.Name,
			Status: string(f.Status),
			Output: f.Output,
		}
		if f.Err != nil {
			rep.Files[i].Error = f.Err.Error()
		}
	}
	return rep
}

// WriteReport marshals rep as YAML to path, creating parent directories.
func WriteReport(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
