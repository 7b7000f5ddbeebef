// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package svgpath extracts path geometry and the viewBox from SVG documents
// and cleans the combined path data for the trait renderer.
package svgpath

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the SVG XML namespace. Only path elements in this namespace
// are collected.
const Namespace = "http://www.w3.org/2000/svg"

var (
	// ErrNoPathData is returned when a document holds no SVG path elements.
	ErrNoPathData = errors.New("no path elements found")

	// ErrNoRoot is returned for input that contains no XML element.
	ErrNoRoot = errors.New("no root element")
)

// entityDeclRe matches internal-subset entity declarations such as
// <!ENTITY ns_svg "http://www.w3.org/2000/svg"> written by Illustrator.
var entityDeclRe = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// Document is the raw geometry read from one SVG file, before cleanup.
type Document struct {
	// ViewBox is the root viewBox attribute, or the default when absent.
	ViewBox string

	// Paths holds the "d" attribute of each path element in document order.
	// A path without "d" contributes an empty string.
	Paths []string
}

// PathData joins all path "d" values with single spaces.
func (d Document) PathData() string {
	return strings.Join(d.Paths, " ")
}

// Parse reads an SVG document from r. The root's viewBox is used when
// present; defaultViewBox is substituted only when the attribute is missing.
// Every descendant path element in the SVG namespace contributes its "d"
// attribute. A document with no such element fails with ErrNoPathData.
func Parse(r io.Reader, defaultViewBox string) (Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	doc := Document{ViewBox: defaultViewBox}
	depth := 0
	seenRoot := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Document{}, fmt.Errorf("parsing XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if seenRoot {
					return Document{}, fmt.Errorf("parsing XML: junk after document element <%s>", el.Name.Local)
				}
				seenRoot = true
				if vb, ok := attr(el.Attr, "viewBox"); ok {
					doc.ViewBox = vb
				}
			} else if el.Name.Space == Namespace && el.Name.Local == "path" {
				d, _ := attr(el.Attr, "d")
				doc.Paths = append(doc.Paths, d)
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.Directive:
			declareEntities(decoder, string(el))
		case xml.CharData:
			if depth == 0 && strings.Trim(string(el), " \t\r\n\ufeff") != "" {
				return Document{}, fmt.Errorf("parsing XML: text outside document element")
			}
		}
	}

	if !seenRoot {
		return Document{}, ErrNoRoot
	}
	if len(doc.Paths) == 0 {
		return Document{}, ErrNoPathData
	}
	return doc, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path, defaultViewBox string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening SVG %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f, defaultViewBox)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// declareEntities registers the general entities declared in a DOCTYPE so
// that later references such as xmlns="&ns_svg;" resolve.
func declareEntities(decoder *xml.Decoder, directive string) {
	for _, m := range entityDeclRe.FindAllStringSubmatch(directive, -1) {
		if decoder.Entity == nil {
			decoder.Entity = make(map[string]string)
		}
		decoder.Entity[m[1]] = m[2] + m[3]
	}
}

// attr looks up an unqualified attribute by local name.
func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
