// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes search results to durable sinks: a SQLite archive
// of search runs and an XLSX workbook.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citesift/internal/search"
	"github.com/pdiddy/citesift/pkg/types"
)

// Store manages the SQLite archive of search runs.
type Store struct {
	db *sql.DB
}

// Run is one archived search.
type Run struct {
	ID             int64     `json:"id" yaml:"id"`
	Source         string    `json:"source" yaml:"source"`
	Keywords       []string  `json:"keywords" yaml:"keywords"`
	Rule           string    `json:"rule" yaml:"rule"`
	Parsed         int       `json:"parsed" yaml:"parsed"`
	Matches        int       `json:"matches" yaml:"matches"`
	TotalCitations int       `json:"total_citations" yaml:"total_citations"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// NewStore opens or creates the archive database at path and creates the
// schema if it does not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			keywords TEXT NOT NULL,
			rule TEXT NOT NULL,
			parsed INTEGER NOT NULL,
			matches INTEGER NOT NULL,
			total_citations INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			journal TEXT,
			citations INTEGER NOT NULL,
			year INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save archives one search run and its matched records in a single
// transaction and returns the run ID.
func (s *Store) Save(ctx context.Context, out search.SearchOutput) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	keywordsJSON, err := json.Marshal(out.Query.Keywords)
	if err != nil {
		return 0, fmt.Errorf("encoding keywords: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, keywords, rule, parsed, matches, total_citations, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		out.Source, string(keywordsJSON), string(out.Query.Rule),
		out.Parsed, out.Matches(), out.TotalCitations,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, position, text, journal, citations, year)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range out.Records {
		if _, err := stmt.ExecContext(ctx, runID, i+1, r.Text, r.Journal, r.Citations, r.Year); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists archived searches, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, keywords, rule, parsed, matches, total_citations, created_at
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns the archived search with the given ID.
func (s *Store) Run(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, keywords, rule, parsed, matches, total_citations, created_at
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %d not found", id)
	}
	return run, err
}

// Records returns the matched records of a run in match order.
func (s *Store) Records(ctx context.Context, runID int64) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, journal, citations, year FROM records
		 WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var recs []types.Record
	for rows.Next() {
		var (
			r       types.Record
			journal sql.NullString
		)
		if err := rows.Scan(&r.Text, &journal, &r.Citations, &r.Year); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Journal = journal.String
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Output rebuilds the SearchOutput of an archived run.
func (s *Store) Output(ctx context.Context, runID int64) (search.SearchOutput, error) {
	run, err := s.Run(ctx, runID)
	if err != nil {
		return search.SearchOutput{}, err
	}
	recs, err := s.Records(ctx, runID)
	if err != nil {
		return search.SearchOutput{}, err
	}
	return search.SearchOutput{
		Source:         run.Source,
		Query:          search.Query{Keywords: run.Keywords, Rule: search.Rule(run.Rule)},
		Records:        recs,
		Parsed:         run.Parsed,
		TotalCitations: run.TotalCitations,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run          Run
		keywordsJSON string
		createdAt    string
	)
	if err := sc.Scan(&run.ID, &run.Source, &keywordsJSON, &run.Rule,
		&run.Parsed, &run.Matches, &run.TotalCitations, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &run.Keywords); err != nil {
		return Run{}, fmt.Errorf("decoding keywords of run %d: %w", run.ID, err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return run, nil
}
