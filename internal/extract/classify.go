// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	infoboxSelector  = "table.infobox.vcard"
	categorySelector = "div.mw-normal-catlinks"
	categoryNoun     = "footballers"
)

// playerKeywords mark an infobox as describing a footballer.
var playerKeywords = []string{"football", "soccer", "midfielder", "forward", "defender"}

// IsPlayerPage reports whether doc describes a football player: either its
// infobox mentions a playerKeywords term, or a category link names
// footballers. A false result is a normal outcome, not an error.
func IsPlayerPage(doc *goquery.Document) bool {
	if infobox := Infobox(doc); infobox != nil {
		text := strings.ToLower(infobox.Text())
		for _, kw := range playerKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}

	inCategory := false
	doc.Find(categorySelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		inCategory = strings.Contains(strings.ToLower(s.Text()), categoryNoun)
		return !inCategory
	})
	return inCategory
}

// Infobox returns the page's summary table, or nil if there is none.
func Infobox(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find(infoboxSelector).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}
