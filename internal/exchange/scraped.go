// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exchange

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jszwec/csvutil"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// ScrapedRow is one line of a scraped-records file.
type ScrapedRow struct {
	URL                    string `csv:"url"`
	Name                   string `csv:"name"`
	FullName               string `csv:"full_name"`
	DateOfBirth            string `csv:"date_of_birth"`
	Age                    string `csv:"age"`
	PlaceOfBirth           string `csv:"place_of_birth"`
	CountryOfBirth         string `csv:"country_of_birth"`
	Positions              string `csv:"positions"`
	CurrentClub            string `csv:"current_club"`
	NationalTeam           string `csv:"national_team"`
	AppearancesCurrentClub string `csv:"appearances_current_club"`
	GoalsCurrentClub       string `csv:"goals_current_club"`
	ScrapingTimestamp      string `csv:"scraping_timestamp"`
	Dead                   string `csv:"dead"`
}

// NewScrapedRow renders rec as a file row.
func NewScrapedRow(rec types.PlayerRecord) ScrapedRow {
	row := ScrapedRow{
		URL:                    rec.URL,
		Name:                   formatText(rec.Name),
		FullName:               formatText(rec.FullName),
		DateOfBirth:            formatText(rec.DateOfBirth),
		Age:                    formatCount(rec.Age),
		PlaceOfBirth:           formatText(rec.PlaceOfBirth),
		CountryOfBirth:         formatText(rec.CountryOfBirth),
		Positions:              formatText(rec.Positions),
		CurrentClub:            formatText(rec.CurrentClub),
		NationalTeam:           formatText(rec.NationalTeam),
		AppearancesCurrentClub: formatCount(rec.AppearancesCurrentClub),
		GoalsCurrentClub:       formatCount(rec.GoalsCurrentClub),
		Dead:                   strconv.FormatBool(rec.Deceased),
	}
	if rec.ScrapedAt != nil {
		row.ScrapingTimestamp = rec.ScrapedAt.UTC().Format(types.TimestampLayout)
	}
	return row
}

// Record converts the row. Timestamps are UTC. A timestamp or dead flag that does not parse is
// an error; every other unreadable value becomes unknown.
func (r ScrapedRow) Record() (types.PlayerRecord, error) {
	rec := types.PlayerRecord{
		URL:                    strings.TrimSpace(r.URL),
		Name:                   text(r.Name),
		FullName:               text(r.FullName),
		DateOfBirth:            birthDate(r.DateOfBirth),
		Age:                    count(r.Age),
		PlaceOfBirth:           text(r.PlaceOfBirth),
		CountryOfBirth:         text(r.CountryOfBirth),
		Positions:              text(r.Positions),
		CurrentClub:            text(r.CurrentClub),
		NationalTeam:           text(r.NationalTeam),
		AppearancesCurrentClub: count(r.AppearancesCurrentClub),
		GoalsCurrentClub:       count(r.GoalsCurrentClub),
	}
	if rec.URL == "" {
		return types.PlayerRecord{}, errors.New("empty url")
	}

	if ts := strings.TrimSpace(r.ScrapingTimestamp); ts != "" {
		t, err := time.ParseInLocation(types.TimestampLayout, ts, time.UTC)
		if err != nil {
			return types.PlayerRecord{}, errors.Wrapf(err, "scraping_timestamp %q", ts)
		}
		rec.ScrapedAt = &t
	}

	if dead := strings.TrimSpace(r.Dead); dead != "" {
		b, err := strconv.ParseBool(dead)
		if err != nil {
			return types.PlayerRecord{}, errors.Wrapf(err, "dead %q", dead)
		}
		rec.Deceased = b
	}

	rec.Normalize()
	return rec, nil
}

// ReadScraped reads a scraped-records file.
func ReadScraped(r io.Reader) ([]types.PlayerRecord, error) {
	rows, err := decodeRows[ScrapedRow](r, "url")
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

// ScrapedWriter streams records to a scraped-records file. The header is
// written even when no record follows.
type ScrapedWriter struct {
	w   *csv.Writer
	enc *csvutil.Encoder
}

// NewScrapedWriter writes the header to w and returns a writer for rows.
func NewScrapedWriter(w io.Writer) (*ScrapedWriter, error) {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(ScrapedRow{}); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	return &ScrapedWriter{w: cw, enc: enc}, nil
}

// Write appends one record.
func (s *ScrapedWriter) Write(rec types.PlayerRecord) error {
	if err := s.enc.Encode(NewScrapedRow(rec)); err != nil {
		return errors.Wrapf(err, "writing %s", rec.URL)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (s *ScrapedWriter) Flush() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return errors.Wrap(err, "flushing scraped records")
	}
	return nil
}

// WriteScraped writes recs as a complete scraped-records file.
func WriteScraped(w io.Writer, recs []types.PlayerRecord) error {
	sw, err := NewScrapedWriter(w)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := sw.Write(rec); err != nil {
			return err
		}
	}
	return sw.Flush()
}
