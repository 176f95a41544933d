// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps extracted clues from many transcripts in a local
// SQLite database so they can be searched after the fact.
package archive

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

const (
	dbFile            = "clues.db"
	defaultMaxResults = 20
)

// Store manages the clue archive database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the archive at cfg.Dir/clues.db and ensures
// the schema exists.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			ingested_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS clues (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL REFERENCES sources(id),
			time TEXT,
			date TEXT,
			author TEXT,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clues_source ON clues(source)`,
		`CREATE INDEX IF NOT EXISTS idx_clues_author ON clues(author)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one archive run.
type IngestSummary struct {
	Stored  int
	Skipped int
}

// Total returns the number of clues processed.
func (s IngestSummary) Total() int {
	return s.Stored + s.Skipped
}

// Ingest stores clues under source, usually the transcript path. Clues
// already archived for the same source are skipped, so re-running on an
// unchanged transcript stores nothing new. The run is one transaction.
func (s *Store) Ingest(ctx context.Context, source string, clues []types.Clue, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (id, ingested_at) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET ingested_at=excluded.ingested_at`,
		source, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return summary, fmt.Errorf("upserting source: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO clues (id, source, time, date, author, text)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range clues {
		res, err := stmt.ExecContext(ctx, stableID(source, c), source, c.Time, c.Date, c.Author, c.Text)
		if err != nil {
			return summary, fmt.Errorf("inserting clue %q: %w", c.Text, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return summary, fmt.Errorf("inserting clue %q: %w", c.Text, err)
		}
		if n == 0 {
			summary.Skipped++
			continue
		}
		summary.Stored++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "archived %s: stored: %d, skipped: %d\n", source, summary.Stored, summary.Skipped)
	return summary, nil
}

// stableID derives an ID that is identical across runs for the same clue
// from the same source.
func stableID(source string, c types.Clue) string {
	h := sha256.New()
	for _, part := range []string{source, c.Date, c.Time, c.Author, c.Text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
