// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/player-scraper/internal/dates"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// InfoboxFields holds the biographical fields read from a summary table.
type InfoboxFields struct {
	FullName       *string
	DateOfBirth    *string
	Age            *int
	PlaceOfBirth   *string
	CountryOfBirth *string
	Positions      *string
	Deceased       bool
}

// infoboxState accumulates row values. The two country sources are kept
// apart so an explicit Country row wins wherever it sits in the table.
type infoboxState struct {
	InfoboxFields
	placeCountry    *string
	explicitCountry *string
	ageAtDeath      *int
	now             time.Time
}

// labelRule maps rows whose label contains label to a field.
type labelRule struct {
	label string
	apply func(st *infoboxState, value string)
}

// labelRules are checked in order for each row; the first match wins, so
// "Date of birth" is tried before anything that could shadow it.
var labelRules = []labelRule{
	{"Full name", func(st *infoboxState, v string) {
		st.FullName = types.StringOrNil(v)
	}},
	{"Date of birth", func(st *infoboxState, v string) {
		st.DateOfBirth = nil
		if iso, ok := dates.NormalizeBirthDate(v); ok {
			st.DateOfBirth = &iso
		}
		st.Age = nil
		if age, ok := dates.Age(v, st.now); ok {
			st.Age = &age
		}
	}},
	{"Place of birth", func(st *infoboxState, v string) {
		st.PlaceOfBirth, st.placeCountry = SplitPlace(v)
	}},
	{"Country", func(st *infoboxState, v string) {
		st.explicitCountry = types.StringOrNil(v)
	}},
	{"Position", func(st *infoboxState, v string) {
		st.Positions = types.StringOrNil(v)
	}},
	{"Date of death", func(st *infoboxState, v string) {
		st.Deceased = true
		if age, ok := dates.AgeAtDeath(v); ok {
			st.ageAtDeath = &age
		}
	}},
}

// ParseInfobox reads label/value rows from the summary table. now is the
// reference instant for computed ages.
func ParseInfobox(table *goquery.Selection, now time.Time) InfoboxFields {
	st := &infoboxState{now: now}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		data := row.Find("td").First()
		if header.Length() == 0 || data.Length() == 0 {
			return
		}
		label := strings.TrimSpace(header.Text())
		value := StripFootnotes(data.Text())
		for _, rule := range labelRules {
			if strings.Contains(label, rule.label) {
				rule.apply(st, value)
				return
			}
		}
	})

	st.CountryOfBirth = st.placeCountry
	if st.explicitCountry != nil {
		st.CountryOfBirth = st.explicitCountry
	}

	// A computed age is meaningless for a deceased subject; only the
	// death row's "(aged N)" annotation is kept.
	if st.Deceased {
		st.Age = st.ageAtDeath
	}

	return st.InfoboxFields
}

// SplitPlace splits "City, Country" on the last comma. A value without a
// comma is taken as a country with no city.
func SplitPlace(s string) (city, country *string) {
	idx := strings.LastIndex(s, ",")
	if idx < 0 {
		return nil, types.StringOrNil(strings.TrimSpace(s))
	}
	return types.StringOrNil(strings.TrimSpace(s[:idx])),
		types.StringOrNil(strings.TrimSpace(s[idx+1:]))
}
