// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "github.com/pdiddy/player-scraper/pkg/types"

// Mode selects how an incoming record is merged into a persisted one.
type Mode int

const (
	// ModeSeed overwrites every field with the incoming value, nil
	// included. Used for bulk imports of a pre-existing dataset.
	ModeSeed Mode = iota

	// ModeRefresh keeps a persisted value unless the incoming one is
	// known and different. The scrape timestamp always takes the incoming
	// value. Used for newly scraped data.
	ModeRefresh
)

func (m Mode) String() string {
	switch m {
	case ModeSeed:
		return "seed"
	case ModeRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Merge combines existing (nil when the URL is not yet stored) with
// incoming under mode. The result keeps existing's PlayerID; with no
// existing record it carries incoming's, which may be empty.
func Merge(existing *types.PlayerRecord, incoming types.PlayerRecord, mode Mode) types.PlayerRecord {
	if existing == nil {
		out := incoming
		out.Normalize()
		return out
	}

	if mode == ModeSeed {
		out := incoming
		out.PlayerID = existing.PlayerID
		out.Normalize()
		return out
	}

	out := *existing
	out.Name = refresh(existing.Name, incoming.Name)
	out.FullName = refresh(existing.FullName, incoming.FullName)
	out.DateOfBirth = refresh(existing.DateOfBirth, incoming.DateOfBirth)
	out.Age = refresh(existing.Age, incoming.Age)
	out.PlaceOfBirth = refresh(existing.PlaceOfBirth, incoming.PlaceOfBirth)
	out.CountryOfBirth = refresh(existing.CountryOfBirth, incoming.CountryOfBirth)
	out.Positions = refresh(existing.Positions, incoming.Positions)
	out.NationalTeam = refresh(existing.NationalTeam, incoming.NationalTeam)
	out.CurrentClub = refresh(existing.CurrentClub, incoming.CurrentClub)
	out.AppearancesCurrentClub = refresh(existing.AppearancesCurrentClub, incoming.AppearancesCurrentClub)
	out.GoalsCurrentClub = refresh(existing.GoalsCurrentClub, incoming.GoalsCurrentClub)

	out.ScrapedAt = incoming.ScrapedAt
	out.Deceased = incoming.Deceased
	out.Normalize()
	return out
}

// changed reports whether incoming is known and differs from old.
func changed[T comparable](old, incoming *T) bool {
	return incoming != nil && (old == nil || *old != *incoming)
}

func refresh[T comparable](old, incoming *T) *T {
	if changed(old, incoming) {
		return incoming
	}
	return old
}
