// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svgpath

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fillAttrRe = regexp.MustCompile(`fill="[^"]*"`)

	// zeroFractionRe matches a digit, a decimal point, one or more zeros and
	// a following non-digit. "1.0 " becomes "1 " but "2.50" is untouched.
	zeroFractionRe = regexp.MustCompile(`([0-9])\.0+([^0-9])`)
)

// Normalize cleans combined path data. The steps run in order:
//
//  1. remove fill="..." substrings
//  2. collapse whitespace runs to one space
//  3. drop ".0", ".00", ... fractions that are followed by a non-digit
//  4. trim surrounding whitespace
func Normalize(pathData string) string {
	s := fillAttrRe.ReplaceAllString(pathData, "")
	s = collapseSpace(s)
	s = zeroFractionRe.ReplaceAllString(s, "${1}${2}")
	return strings.TrimSpace(s)
}

// collapseSpace replaces each run of Unicode whitespace with a single space.
// Leading and trailing runs are kept as one space so that step 3 still sees
// a non-digit after a final "1.0 ".
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
