// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/player-scraper/internal/dates"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// ProseFields holds the fields pattern-matched from page prose.
type ProseFields struct {
	DateOfBirth    *string
	Age            *int
	PlaceOfBirth   *string
	CountryOfBirth *string
	NationalTeam   *string
	Positions      *string
	CurrentClub    *string
}

// proseRule targets one field (position and club share a phrase). Its
// patterns are tried in order; the first whose match apply accepts wins.
type proseRule struct {
	patterns []*regexp.Regexp
	apply    func(f *ProseFields, m []string) bool
}

var proseRules = []proseRule{
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`born on (\d{1,2} [A-Za-z]+ \d{4})`),
			regexp.MustCompile(`\((\d{1,2} [A-Za-z]+ \d{4})\)`),
			regexp.MustCompile(`\b(\d{1,2} [A-Za-z]+ \d{4})\b`),
		},
		apply: func(f *ProseFields, m []string) bool {
			t, ok := dates.ParseDayMonthYear(m[1])
			if !ok {
				return false
			}
			f.DateOfBirth = types.Ptr(dates.FormatISO(t))
			return true
		},
	},
	{
		patterns: []*regexp.Regexp{regexp.MustCompile(`born in ([A-Za-z\s,]+)`)},
		apply: func(f *ProseFields, m []string) bool {
			f.PlaceOfBirth = types.StringOrNil(strings.Trim(m[1], " ,"))
			return f.PlaceOfBirth != nil
		},
	},
	{
		// The captured phrase is a nationality/role adjective ("Greek
		// professional"), not a birth country. Kept as country_of_birth
		// for compatibility with existing datasets.
		patterns: []*regexp.Regexp{regexp.MustCompile(`is a ([A-Za-z\s,]+) footballer`)},
		apply: func(f *ProseFields, m []string) bool {
			f.CountryOfBirth = types.StringOrNil(strings.TrimSpace(m[1]))
			return f.CountryOfBirth != nil
		},
	},
	{
		patterns: []*regexp.Regexp{regexp.MustCompile(`has represented the ([A-Za-z\s]+) national team`)},
		apply: func(f *ProseFields, m []string) bool {
			f.NationalTeam = types.StringOrNil(strings.TrimSpace(m[1]))
			return f.NationalTeam != nil
		},
	},
	{
		patterns: []*regexp.Regexp{regexp.MustCompile(`plays as a ([\pL\pN_\s]+) for local club ([\pL\pN_\s.\-]+?)\.`)},
		apply: func(f *ProseFields, m []string) bool {
			f.Positions = types.StringOrNil(strings.TrimSpace(m[1]))
			f.CurrentClub = types.StringOrNil(strings.TrimSpace(m[2]))
			return true
		},
	},
}

// ParseProse extracts fields from flattened page text when the page has no
// summary table. A rule that finds nothing leaves its field nil. A parsed
// date of birth yields an age computed at now.
func ParseProse(text string, now time.Time) ProseFields {
	text = collapse(text)

	var f ProseFields
	for _, rule := range proseRules {
		for _, p := range rule.patterns {
			m := p.FindStringSubmatch(text)
			if m != nil && rule.apply(&f, m) {
				break
			}
		}
	}

	if f.DateOfBirth != nil {
		if dob, err := time.Parse(dates.ISOLayout, *f.DateOfBirth); err == nil {
			f.Age = types.Ptr(dates.AgeAt(dob, now))
		}
	}
	return f
}
