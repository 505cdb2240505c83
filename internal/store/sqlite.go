package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"jobtrack/internal/model"
)

// SQLiteStore tracks seen posting ids in a SQLite database. Unlike the
// file store the set lives on disk only; membership checks query the
// database directly.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ model.SeenStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at path and ensures
// the seen_postings table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// sql.Open is lazy; ping to surface a bad path now.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_postings (
		id         TEXT PRIMARY KEY,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_postings table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Contains reports whether id has been recorded.
func (s *SQLiteStore) Contains(id string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM seen_postings WHERE id = ?", id).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check seen status for %s: %w", id, err)
	}
	return true, nil
}

// AddAll records ids in one transaction. Ids that already exist are
// ignored.
func (s *SQLiteStore) AddAll(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seen insert: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_postings (id) VALUES (?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing seen insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording %s as seen: %w", id, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of recorded ids.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM seen_postings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting seen postings: %w", err)
	}
	return count, nil
}

// Backend identifies the backing database for the stats surface.
func (s *SQLiteStore) Backend() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
