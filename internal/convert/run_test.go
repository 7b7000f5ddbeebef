// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/svgpaths/internal/svgpath"
	"github.com/pdiddy/svgpaths/pkg/types"
)

func writeSVG(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// setupBase creates <base>/basicPhilPaths and returns base and the input dir.
func setupBase(t *testing.T) (base, inputDir string) {
	t.Helper()
	base = t.TempDir()
	inputDir = filepath.Join(base, types.DefaultInputDir)
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	return base, inputDir
}

func readTrait(t *testing.T, path string) types.TraitPaths {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var tp types.TraitPaths
	require.NoError(t, json.Unmarshal(data, &tp))
	return tp
}

func TestLocateInputs(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		want    []string
		wantErr error
	}{
		{
			name: "lists svg files sorted, skipping others",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeSVG(t, dir, "b.svg", "")
				writeSVG(t, dir, "a.svg", "")
				writeSVG(t, dir, "notes.txt", "")
				writeSVG(t, dir, "upper.SVG", "")
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.svg"), 0o755))
				writeSVG(t, filepath.Join(dir, "nested.svg"), "c.svg", "")
				return dir
			},
			want: []string{"a.svg", "b.svg"},
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			wantErr: ErrInputDirNotFound,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeSVG(t, dir, "file.svg", "")
				return filepath.Join(dir, "file.svg")
			},
			wantErr: ErrInputDirNotFound,
		},
		{
			name: "no svg files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeSVG(t, dir, "readme.md", "")
				return dir
			},
			wantErr: ErrNoSVGFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := LocateInputs(dir)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var setupErr *SetupError
				require.ErrorAs(t, err, &setupErr)
				assert.Equal(t, dir, setupErr.Dir)
				return
			}
			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, n := range tt.want {
				want[i] = filepath.Join(dir, n)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestRun(t *testing.T) {
	base, inputDir := setupBase(t)
	writeSVG(t, inputDir, "icon.svg",
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M1.0 2.50 L3 4"/></svg>`)
	writeSVG(t, inputDir, "multi.svg",
		`<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M10.0  20.0
           L30 40" fill="red"/>
  <g><path d="Z"/></g>
</svg>`)
	writeSVG(t, inputDir, "empty.svg",
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><rect/></svg>`)
	writeSVG(t, inputDir, "broken.svg", `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0">`)

	cfg := types.ConversionConfig{BaseDir: base}
	var log bytes.Buffer
	result, err := Run(context.Background(), NewSVGConverter(""), cfg, newTestLogger(&log))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 2, result.Failed)

	outDir := filepath.Join(base, types.DefaultOutputDir)

	icon := readTrait(t, filepath.Join(outDir, "icon.json"))
	assert.Equal(t, types.TraitPaths{PathData: "M1 2.50 L3 4", ViewBox: "0 0 24 24"}, icon)

	multi := readTrait(t, filepath.Join(outDir, "multi.json"))
	assert.Equal(t, types.TraitPaths{PathData: "M10 20 L30 40 Z", ViewBox: types.DefaultViewBox}, multi)

	assert.NoFileExists(t, filepath.Join(outDir, "empty.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "broken.json"))

	for _, f := range result.Files {
		if f.Name == "empty" {
			assert.ErrorIs(t, f.Err, svgpath.ErrNoPathData)
		}
	}

	assert.Contains(t, log.String(), `msg="conversion complete"`)
	assert.Contains(t, log.String(), "file=empty.svg")
}

func TestRun_Idempotent(t *testing.T) {
	base, inputDir := setupBase(t)
	writeSVG(t, inputDir, "a.svg",
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8"><path d="M1.0 1 L&amp;2"/><path d="M3 3"/></svg>`)

	cfg := types.ConversionConfig{BaseDir: base}
	outPath := filepath.Join(base, types.DefaultOutputDir, "a.json")

	var log bytes.Buffer
	_, err := Run(context.Background(), NewSVGConverter(""), cfg, newTestLogger(&log))
	require.NoError(t, err)
	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	_, err = Run(context.Background(), NewSVGConverter(""), cfg, newTestLogger(&log))
	require.NoError(t, err)
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"M1 1 L&2 M3 3"`)
}

func TestRun_SetupFailuresHaveNoSideEffects(t *testing.T) {
	t.Run("missing input directory", func(t *testing.T) {
		base := t.TempDir()
		var log bytes.Buffer
		_, err := Run(context.Background(), NewSVGConverter(""), types.ConversionConfig{BaseDir: base}, newTestLogger(&log))
		require.ErrorIs(t, err, ErrInputDirNotFound)
		assert.NoDirExists(t, filepath.Join(base, types.DefaultOutputDir))
	})

	t.Run("no svg files", func(t *testing.T) {
		base, _ := setupBase(t)
		var log bytes.Buffer
		_, err := Run(context.Background(), NewSVGConverter(""), types.ConversionConfig{BaseDir: base}, newTestLogger(&log))
		require.ErrorIs(t, err, ErrNoSVGFiles)
		assert.NoDirExists(t, filepath.Join(base, types.DefaultOutputDir))
	})
}

func TestRun_ExplicitDirsAndDefaultViewBox(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "nested", "out")
	require.NoError(t, os.MkdirAll(in, 0o755))
	writeSVG(t, in, "x.svg", `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`)

	cfg := types.ConversionConfig{BaseDir: "/unused", InputDir: in, OutputDir: out}
	var log bytes.Buffer
	result, err := Run(context.Background(), NewSVGConverter("0 0 100 100"), cfg, newTestLogger(&log))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)

	got := readTrait(t, filepath.Join(out, "x.json"))
	assert.Equal(t, "0 0 100 100", got.ViewBox)
}

func TestRun_Report(t *testing.T) {
	base, inputDir := setupBase(t)
	writeSVG(t, inputDir, "good.svg", `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`)
	writeSVG(t, inputDir, "bad.svg", `<svg xmlns="http://www.w3.org/2000/svg"/>`)

	reportPath := filepath.Join(base, "reports", "run.yaml")
	cfg := types.ConversionConfig{BaseDir: base, ReportPath: reportPath}

	var log bytes.Buffer
	_, err := Run(context.Background(), NewSVGConverter(""), cfg, newTestLogger(&log))
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, 1, rep.Converted)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 2, rep.Total)
	require.Len(t, rep.Files, 2)
	assert.Equal(t, "bad", rep.Files[0].Name)
	assert.Equal(t, "failed", rep.Files[0].Status)
	assert.Contains(t, rep.Files[0].Error, "no path elements found")
	assert.Equal(t, "good", rep.Files[1].Name)
	assert.Equal(t, filepath.Join(base, types.DefaultOutputDir, "good.json"), rep.Files[1].Output)
}
