// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/svgpaths/internal/svgpath"
	"github.com/pdiddy/svgpaths/pkg/types"
)

// SVGConverter extracts and cleans path data with the svgpath package.
type SVGConverter struct {
	defaultViewBox string
}

// NewSVGConverter creates a converter that substitutes defaultViewBox for a
// missing root viewBox. An empty value selects types.DefaultViewBox.
func NewSVGConverter(defaultViewBox string) *SVGConverter {
	if defaultViewBox == "" {
		defaultViewBox = types.DefaultViewBox
	}
	return &SVGConverter{defaultViewBox: defaultViewBox}
}

// Convert parses the SVG at svgPath and returns its normalized path data.
func (s *SVGConverter) Convert(svgPath string) (types.TraitPaths, error) {
	doc, err := svgpath.ParseFile(svgPath, s.defaultViewBox)
	if err != nil {
		return types.TraitPaths{}, err
	}
	return types.TraitPaths{
		PathData: svgpath.Normalize(doc.PathData()),
		ViewBox:  doc.ViewBox,
	}, nil
}
