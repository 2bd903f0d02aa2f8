// Package specstore persists captured page specs and clustered patterns in
// SQLite so theme generation can run without re-segmenting every page.
package specstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sitedistill/pagespec"
)

// Store manages captured page specs and pattern clusters using SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at the given database path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist. Specs are keyed by slug;
// each save gets a fresh capture id. Patterns keep their clustering position
// so listing preserves the clusterer's ordering.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS specs (
		capture_id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		url TEXT NOT NULL,
		base_url TEXT NOT NULL,
		captured_at TEXT NOT NULL,
		spec TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS patterns (
		pattern_id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		signature TEXT NOT NULL,
		count INTEGER NOT NULL,
		position INTEGER NOT NULL,
		pattern TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSpec stores a page spec, replacing any previous capture of the same
// slug.
func (s *Store) SaveSpec(spec *pagespec.PageSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal page spec: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO specs (
			capture_id, slug, url, base_url, captured_at, spec
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		uuid.New().String(),
		spec.Slug,
		spec.URL,
		spec.BaseURL,
		time.Now().Format(time.RFC3339),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to insert page spec: %w", err)
	}

	return nil
}

// GetSpec retrieves the latest capture of a page by slug.
func (s *Store) GetSpec(slug string) (*pagespec.PageSpec, error) {
	var data string
	err := s.db.QueryRow("SELECT spec FROM specs WHERE slug = ?", slug).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("spec not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query page spec: %w", err)
	}

	var spec pagespec.PageSpec
	if err := json.Unmarshal([]byte(data), &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page spec: %w", err)
	}

	return &spec, nil
}

// ListSpecs lists all stored page specs in slug order.
func (s *Store) ListSpecs() ([]pagespec.PageSpec, error) {
	rows, err := s.db.Query("SELECT spec FROM specs ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("failed to query page specs: %w", err)
	}
	defer rows.Close()

	var specs []pagespec.PageSpec
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan page spec: %w", err)
		}

		var spec pagespec.PageSpec
		if err := json.Unmarshal([]byte(data), &spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal page spec: %w", err)
		}
		specs = append(specs, spec)
	}

	return specs, rows.Err()
}

// DeleteSpec removes a stored page spec by slug.
func (s *Store) DeleteSpec(slug string) error {
	result, err := s.db.Exec("DELETE FROM specs WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("failed to delete page spec: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("spec not found")
	}

	return nil
}

// ReplacePatterns replaces the stored pattern set wholesale. Patterns are a
// batch product of one clustering run, so partial updates never make sense.
func (s *Store) ReplacePatterns(patterns []pagespec.Pattern) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM patterns"); err != nil {
		return fmt.Errorf("failed to clear patterns: %w", err)
	}

	query := `
		INSERT INTO patterns (pattern_id, type, signature, count, position, pattern)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, p := range patterns {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal pattern: %w", err)
		}
		if _, err := tx.Exec(query, p.PatternID, string(p.Type), p.Signature, p.Stats.Count, i, string(data)); err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit patterns: %w", err)
	}
	return nil
}

// ListPatterns lists all stored patterns in their clustering order.
func (s *Store) ListPatterns() ([]pagespec.Pattern, error) {
	rows, err := s.db.Query("SELECT pattern FROM patterns ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []pagespec.Pattern
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}

		var p pagespec.Pattern
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pattern: %w", err)
		}
		patterns = append(patterns, p)
	}

	return patterns, rows.Err()
}
