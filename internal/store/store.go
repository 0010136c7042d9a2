// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists PlayerRecords in SQLite and reconciles new
// extractions into them.
//
// Records are keyed by URL. Each URL gets a stable player_id the first time
// it is stored; later reconciliations look it up and never mint another.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/player-scraper/pkg/types"
)

const (
	defaultPath        = "db/database.sqlite"
	defaultBusyTimeout = 5 * time.Second
)

const playerColumns = `player_id, url, name, full_name, date_of_birth, age,
	place_of_birth, country_of_birth, positions, current_club, national_team,
	appearances_current_club, goals_current_club, scraping_timestamp`

const upsertPlayer = `INSERT INTO players (` + playerColumns + `)
	VALUES (:player_id, :url, :name, :full_name, :date_of_birth, :age,
		:place_of_birth, :country_of_birth, :positions, :current_club, :national_team,
		:appearances_current_club, :goals_current_club, :scraping_timestamp)
	ON CONFLICT(url) DO UPDATE SET
		name=excluded.name,
		full_name=excluded.full_name,
		date_of_birth=excluded.date_of_birth,
		age=excluded.age,
		place_of_birth=excluded.place_of_birth,
		country_of_birth=excluded.country_of_birth,
		positions=excluded.positions,
		current_club=excluded.current_club,
		national_team=excluded.national_team,
		appearances_current_club=excluded.appearances_current_club,
		goals_current_club=excluded.goals_current_club,
		scraping_timestamp=excluded.scraping_timestamp`

// Store manages the player SQLite database. It is safe for concurrent use.
type Store struct {
	db    *sqlx.DB
	locks *keyedMutex
	newID func() string
}

// Outcome describes one committed reconciliation.
type Outcome struct {
	PlayerID string
	Created  bool
}

// Open opens or creates the database at cfg.Path and its schema. The
// caller owns the returned Store and must Close it.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate",
		path, busy.Milliseconds())
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		locks: newKeyedMutex(),
		newID: uuid.NewString,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS players (
			player_id TEXT PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			name TEXT,
			full_name TEXT,
			date_of_birth TEXT,
			age INTEGER,
			place_of_birth TEXT,
			country_of_birth TEXT,
			positions TEXT,
			current_club TEXT,
			national_team TEXT,
			appearances_current_club INTEGER,
			goals_current_club INTEGER,
			scraping_timestamp DATETIME
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the stored record for url, or nil if there is none.
func (s *Store) Lookup(ctx context.Context, url string) (*types.PlayerRecord, error) {
	return lookup(ctx, s.db, url)
}

func lookup(ctx context.Context, q sqlx.QueryerContext, url string) (*types.PlayerRecord, error) {
	var rec types.PlayerRecord
	err := sqlx.GetContext(ctx, q, &rec, `SELECT `+playerColumns+` FROM players WHERE url = ?`, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", url, err)
	}
	return &rec, nil
}

// Reconcile merges rec into the stored record for rec.URL under mode and
// commits the result in one transaction. Reconciliations of the same URL
// are serialized; different URLs proceed independently.
func (s *Store) Reconcile(ctx context.Context, rec types.PlayerRecord, mode Mode) (Outcome, error) {
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return Outcome{}, err
	}

	unlock := s.locks.Lock(rec.URL)
	defer unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := lookup(ctx, tx, rec.URL)
	if err != nil {
		return Outcome{}, err
	}

	merged := Merge(existing, rec, mode)
	if merged.PlayerID == "" {
		merged.PlayerID = s.newID()
	}

	if _, err := tx.NamedExecContext(ctx, upsertPlayer, merged); err != nil {
		return Outcome{}, fmt.Errorf("upserting %s: %w", rec.URL, err)
	}

	if err := tx.Commit(); err != nil {
		return Outcome{}, fmt.Errorf("committing %s: %w", rec.URL, err)
	}

	return Outcome{PlayerID: merged.PlayerID, Created: existing == nil}, nil
}

// List returns every stored record ordered by URL.
func (s *Store) List(ctx context.Context) ([]types.PlayerRecord, error) {
	var recs []types.PlayerRecord
	if err := s.db.SelectContext(ctx, &recs, `SELECT `+playerColumns+` FROM players ORDER BY url`); err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return recs, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM players`); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}
