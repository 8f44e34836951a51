// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store caches extracted talks in SQLite so repeated planning
// runs skip re-parsing the conference text. Cached talks are keyed by
// conference name and invalidated when the source file's mod time
// changes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/conference-planner/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "planner.db"
)

// Store manages the talk cache database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache at conferenceDir/index/planner.db and
// ensures the schema exists.
func Open(conferenceDir string) (*Store, error) {
	dbDir := filepath.Join(conferenceDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS talks (
			conference TEXT NOT NULL,
			seq INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			authors TEXT,
			session_type TEXT,
			day TEXT,
			time TEXT,
			location TEXT,
			session_name TEXT,
			PRIMARY KEY (conference, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS extraction_status (
			conference TEXT PRIMARY KEY,
			source_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Fresh reports whether the cache for conference was built from a source
// file with the given mod time. A missing status row means stale.
func (s *Store) Fresh(ctx context.Context, conference string, sourceModTime time.Time) bool {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_mod_time FROM extraction_status WHERE conference = ?`, conference,
	).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == sourceModTime.UTC().Format(time.RFC3339Nano)
}

// SaveTalks replaces the cached talks for conference and records the
// source file's mod time for later freshness checks.
func (s *Store) SaveTalks(ctx context.Context, conference string, talks []types.Talk, sourceModTime time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM talks WHERE conference = ?`, conference); err != nil {
		return fmt.Errorf("clearing old talks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO talks (conference, seq, id, title, abstract, authors, session_type, day, time, location, session_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range talks {
		authorsJSON, _ := json.Marshal(t.Authors)
		_, err := stmt.ExecContext(ctx,
			conference, i, t.ID, t.Title, t.Abstract, string(authorsJSON),
			string(t.SessionType), t.Day, t.Time, t.Location, t.SessionName,
		)
		if err != nil {
			return fmt.Errorf("inserting talk %s: %w", t.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO extraction_status (conference, source_mod_time) VALUES (?, ?)
		 ON CONFLICT(conference) DO UPDATE SET source_mod_time=excluded.source_mod_time`,
		conference, sourceModTime.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("updating extraction status: %w", err)
	}

	return tx.Commit()
}

// LoadTalks returns the cached talks for conference in extraction order.
func (s *Store) LoadTalks(ctx context.Context, conference string) ([]types.Talk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, abstract, authors, session_type, day, time, location, session_name
		 FROM talks WHERE conference = ? ORDER BY seq`, conference)
	if err != nil {
		return nil, fmt.Errorf("querying talks: %w", err)
	}
	defer rows.Close()

	var talks []types.Talk
	for rows.Next() {
		var t types.Talk
		var authorsJSON string
		if err := rows.Scan(&t.ID, &t.Title, &t.Abstract, &authorsJSON,
			(*string)(&t.SessionType), &t.Day, &t.Time, &t.Location, &t.SessionName); err != nil {
			return nil, fmt.Errorf("scanning talk row: %w", err)
		}
		if authorsJSON != "" {
			if err := json.Unmarshal([]byte(authorsJSON), &t.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors for %s: %w", t.ID, err)
			}
		}
		talks = append(talks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating talks: %w", err)
	}
	return talks, nil
}
