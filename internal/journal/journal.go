// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an optional, permanent log of conversions in a
// SQLite database. It is separate from the quota tracker, which forgets
// history at day rollover on purpose; the journal only grows when the
// caller opts in.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/adobe-helper/pkg/types"
)

const (
	dbFile    = "journal.db"
	dayLayout = "2006-01-02"
)

// Journal is an append-only conversion log.
type Journal struct {
	db *sql.DB
}

// Entry is one journaled conversion.
type Entry struct {
	ID        string
	Timestamp time.Time
	Filename  string
	Day       string
}

// Open opens or creates the journal database inside dir and ensures the
// schema exists.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			ts TEXT NOT NULL,
			filename TEXT,
			day TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_day ON conversions(day)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a conversion event and returns its generated ID. A zero
// timestamp is replaced with the current time.
func (j *Journal) Record(event types.ConversionEvent) (string, error) {
	id := uuid.NewString()

	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	filename := ""
	if event.Filename != nil {
		filename = *event.Filename
	}

	_, err := j.db.Exec(
		`INSERT INTO conversions (id, ts, filename, day) VALUES (?, ?, ?, ?)`,
		id, ts.Format(time.RFC3339), filename, ts.Format(dayLayout),
	)
	if err != nil {
		return "", fmt.Errorf("recording conversion: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (j *Journal) List(limit int) ([]Entry, error) {
	query := `SELECT id, ts, filename, day FROM conversions ORDER BY ts DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = j.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = j.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Filename, &e.Day); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByDay returns the number of journaled conversions per calendar day.
func (j *Journal) CountByDay() (map[string]int, error) {
	rows, err := j.db.Query(`SELECT day, COUNT(*) FROM conversions GROUP BY day`)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		counts[day] = n
	}
	return counts, rows.Err()
}
