// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	footnoteMarker = regexp.MustCompile(`\[[^\]]*\]`)
	annotation     = regexp.MustCompile(`\s*\[.*?\]|\s*\([^)]*\)`)
)

// StripFootnotes removes "[1]"-style reference markers from cell text and
// collapses whitespace. Parenthesized content is kept, since date cells
// carry the ISO date and age annotations in parentheses.
func StripFootnotes(s string) string {
	return collapse(footnoteMarker.ReplaceAllString(s, ""))
}

// StripAnnotations removes both bracketed footnotes and parenthetical
// remarks, e.g. "Kostas Tsimikas (footballer)" becomes "Kostas Tsimikas".
func StripAnnotations(s string) string {
	return collapse(annotation.ReplaceAllString(s, ""))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
