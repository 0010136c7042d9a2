// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exchange

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// SeedRow is one line of the seed dataset.
type SeedRow struct {
	PlayerID       string `csv:"PlayerID"`
	URL            string `csv:"URL"`
	Name           string `csv:"Name"`
	FullName       string `csv:"Full name"`
	DateOfBirth    string `csv:"Date of birth"`
	Age            string `csv:"Age"`
	CityOfBirth    string `csv:"City of birth"`
	CountryOfBirth string `csv:"Country of birth"`
	Position       string `csv:"Position"`
	CurrentClub    string `csv:"Current club"`
	NationalTeam   string `csv:"National_team"`
}

// Record converts the row. The seed dataset carries no club statistics
// and no scrape timestamp.
func (r SeedRow) Record() (types.PlayerRecord, error) {
	rec := types.PlayerRecord{
		PlayerID:       strings.TrimSpace(r.PlayerID),
		URL:            strings.TrimSpace(r.URL),
		Name:           text(r.Name),
		FullName:       text(r.FullName),
		DateOfBirth:    birthDate(r.DateOfBirth),
		Age:            count(r.Age),
		PlaceOfBirth:   text(r.CityOfBirth),
		CountryOfBirth: text(r.CountryOfBirth),
		Positions:      text(r.Position),
		CurrentClub:    text(r.CurrentClub),
		NationalTeam:   text(r.NationalTeam),
	}
	if rec.URL == "" {
		return types.PlayerRecord{}, errors.New("empty URL")
	}
	return rec, nil
}

// ReadSeed reads the seed dataset.
func ReadSeed(r io.Reader) ([]types.PlayerRecord, error) {
	rows, err := decodeRows[SeedRow](r, "URL")
	if err != nil {
		return nil, err
	}

	recs := make([]types.PlayerRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := row.Record()
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "line %d: %v", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
