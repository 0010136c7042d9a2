// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	seniorCareerHeader        = "Senior career"
	internationalCareerHeader = "International career"
	footerRowClass            = "infobox-below"
)

// ClubStint is the ongoing club tenure found in the senior career section.
// Appearances and Goals are only set when Club is.
type ClubStint struct {
	Club        *string
	Appearances *int
	Goals       *int
}

// ScanCurrentClub finds the open-ended tenure ("2020–") among the senior
// career rows of scope. Rows run from the senior career header to the
// international career header, or to the end of the table. The last open
// row wins. A missing section or no open row yields a zero ClubStint.
func ScanCurrentClub(scope *goquery.Selection) ClubStint {
	senior := findHeader(scope, func(text string) bool {
		return strings.HasPrefix(text, seniorCareerHeader)
	})
	if senior == nil {
		return ClubStint{}
	}

	var stop *goquery.Selection
	if intl := findHeader(scope, isInternationalHeader); intl != nil {
		stop = intl.Closest("tr")
	}

	var rows []*goquery.Selection
	senior.Closest("tr").NextAllFiltered("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if stop != nil && row.IsSelection(stop) {
			return false
		}
		rows = append(rows, row)
		return true
	})

	for i := len(rows) - 1; i >= 0; i-- {
		if isOpenTenure(yearLabel(rows[i])) {
			return readStint(rows[i])
		}
	}
	return ClubStint{}
}

// ScanNationalTeam returns the most recent national team: walking the rows
// after the international career header from the bottom up, the first data
// cell holding a link names it. Footer rows are skipped.
func ScanNationalTeam(scope *goquery.Selection) *string {
	header := findHeader(scope, isInternationalHeader)
	if header == nil {
		return nil
	}

	all := header.Closest("table").Find("tr")
	start := all.IndexOfSelection(header.Closest("tr"))
	if start < 0 {
		return nil
	}

	for i := all.Length() - 1; i > start; i-- {
		row := all.Eq(i)
		if row.HasClass(footerRowClass) {
			continue
		}
		link := row.Find("td.infobox-data").First().Find("a").First()
		if link.Length() > 0 {
			if name := StripAnnotations(link.Text()); name != "" {
				return &name
			}
		}
	}
	return nil
}

func isInternationalHeader(text string) bool {
	return strings.Contains(text, internationalCareerHeader)
}

// findHeader returns the first th in scope whose trimmed text satisfies match.
func findHeader(scope *goquery.Selection, match func(string) bool) *goquery.Selection {
	sel := scope.Find("th").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(strings.TrimSpace(s.Text()))
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

func yearLabel(row *goquery.Selection) string {
	label := row.Find("th.infobox-label").First()
	if label.Length() == 0 {
		label = row.ChildrenFiltered("th").First()
	}
	return collapse(label.Text())
}

// isOpenTenure reports whether a year range has a start but no end, e.g.
// "2020–" or "2020-".
func isOpenTenure(label string) bool {
	for _, dash := range []string{"–", "-"} {
		if strings.HasSuffix(label, dash) && len(strings.TrimSpace(strings.TrimSuffix(label, dash))) > 0 {
			return true
		}
	}
	return false
}

func dataCells(row *goquery.Selection) *goquery.Selection {
	cells := row.Find("td.infobox-data")
	if cells.Length() == 0 {
		cells = row.ChildrenFiltered("td")
	}
	return cells
}

func readStint(row *goquery.Selection) ClubStint {
	cells := dataCells(row)
	if cells.Length() == 0 {
		return ClubStint{}
	}

	club := clubName(cells.First())
	if club == nil {
		return ClubStint{}
	}

	stint := ClubStint{Club: club}
	if cells.Length() >= 3 {
		stint.Appearances = parseCount(cells.Eq(1).Text())
		stint.Goals = parseCount(cells.Eq(2).Text())
	}
	return stint
}

// clubName prefers the first link in the cell and falls back to its text,
// minus loan arrows and parenthetical remarks.
func clubName(cell *goquery.Selection) *string {
	var name string
	if link := cell.Find("a").First(); link.Length() > 0 {
		name = StripAnnotations(link.Text())
	} else {
		name = StripAnnotations(strings.TrimLeft(strings.TrimSpace(cell.Text()), "→ "))
	}
	if name == "" {
		return nil
	}
	return &name
}

// parseCount reads "120", "(8)" or "8[a]" as an integer. Anything that is
// not a plain count yields nil.
func parseCount(s string) *int {
	s = strings.Trim(StripFootnotes(s), "() ")
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
