// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a fetched player page into a partial PlayerRecord.
//
// Pages are classified first; out-of-scope pages produce no record. The
// infobox summary table is parsed when present, otherwise fields are
// pattern-matched from prose. The career history scan for the current club
// and most recent national team runs either way.
package extract

import (
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// Options configures extraction.
type Options struct {
	// Now supplies both the scrape timestamp and the reference instant for
	// computed ages. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ParseHTML parses page content into a document.
func ParseHTML(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}

// Player extracts a record for url from doc. ok is false when the page does
// not describe a football player.
func Player(doc *goquery.Document, url string, opts Options) (rec types.PlayerRecord, ok bool) {
	if !IsPlayerPage(doc) {
		return types.PlayerRecord{}, false
	}

	now := opts.now()
	rec = types.PlayerRecord{
		URL:       url,
		ScrapedAt: types.Ptr(now.Truncate(time.Second)),
	}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		rec.Name = types.StringOrNil(StripAnnotations(h1.Text()))
	}

	scope := doc.Selection
	if infobox := Infobox(doc); infobox != nil {
		scope = infobox
		f := ParseInfobox(infobox, now)
		rec.FullName = f.FullName
		rec.DateOfBirth = f.DateOfBirth
		rec.Age = f.Age
		rec.PlaceOfBirth = f.PlaceOfBirth
		rec.CountryOfBirth = f.CountryOfBirth
		rec.Positions = f.Positions
		rec.Deceased = f.Deceased
	} else {
		f := ParseProse(doc.Text(), now)
		rec.DateOfBirth = f.DateOfBirth
		rec.Age = f.Age
		rec.PlaceOfBirth = f.PlaceOfBirth
		rec.CountryOfBirth = f.CountryOfBirth
		rec.NationalTeam = f.NationalTeam
		rec.Positions = f.Positions
		rec.CurrentClub = f.CurrentClub
	}

	// Career tables override what prose matching found; a prose value
	// survives only when the tables say nothing.
	if team := ScanNationalTeam(scope); team != nil {
		rec.NationalTeam = team
	}
	if stint := ScanCurrentClub(scope); stint.Club != nil {
		rec.CurrentClub = stint.Club
		rec.AppearancesCurrentClub = stint.Appearances
		rec.GoalsCurrentClub = stint.Goals
	}

	rec.Normalize()
	return rec, true
}
