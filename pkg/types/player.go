// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is the text form of ScrapedAt in exchange files.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the canonical ISO calendar date used for DateOfBirth.
const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// PlayerRecord is one subject's extracted or persisted facts. URL is the
// identity; every other field is nil when unknown.
type PlayerRecord struct {
	// PlayerID is the stable identifier minted on first persistence.
	// Empty on freshly extracted records.
	PlayerID string `json:"player_id,omitempty" yaml:"player_id,omitempty" db:"player_id"`

	// URL is the source page and the reconciliation key.
	URL string `json:"url" yaml:"url" db:"url" validate:"required,url"`

	Name     *string `json:"name" yaml:"name" db:"name"`
	FullName *string `json:"full_name" yaml:"full_name" db:"full_name"`

	// DateOfBirth is a DateLayout string.
	DateOfBirth *string `json:"date_of_birth" yaml:"date_of_birth" db:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`

	// Age is derived from DateOfBirth unless the page annotates it.
	Age *int `json:"age" yaml:"age" db:"age" validate:"omitempty,gte=0"`

	PlaceOfBirth   *string `json:"place_of_birth" yaml:"place_of_birth" db:"place_of_birth"`
	CountryOfBirth *string `json:"country_of_birth" yaml:"country_of_birth" db:"country_of_birth"`
	Positions      *string `json:"positions" yaml:"positions" db:"positions"`
	CurrentClub    *string `json:"current_club" yaml:"current_club" db:"current_club"`
	NationalTeam   *string `json:"national_team" yaml:"national_team" db:"national_team"`

	// AppearancesCurrentClub and GoalsCurrentClub are only set together
	// with CurrentClub.
	AppearancesCurrentClub *int `json:"appearances_current_club" yaml:"appearances_current_club" db:"appearances_current_club" validate:"omitempty,gte=0"`
	GoalsCurrentClub       *int `json:"goals_current_club" yaml:"goals_current_club" db:"goals_current_club" validate:"omitempty,gte=0"`

	// ScrapedAt marks when the extraction happened.
	ScrapedAt *time.Time `json:"scraping_timestamp" yaml:"scraping_timestamp" db:"scraping_timestamp"`

	// Deceased is set when the page carries a date of death. It is not
	// persisted.
	Deceased bool `json:"dead" yaml:"dead" db:"-"`
}

// Normalize enforces the current-club invariant: statistics are dropped
// when the club is unknown.
func (p *PlayerRecord) Normalize() {
	if p.CurrentClub == nil {
		p.AppearancesCurrentClub = nil
		p.GoalsCurrentClub = nil
	}
}

// Validate checks field constraints on the record.
func (p *PlayerRecord) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid player record %q: %w", p.URL, err)
	}
	return nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// StringOrNil returns nil for an empty string and a pointer otherwise.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
