package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no entry exists for a problem id.
var ErrNotFound = errors.New("history entry not found")

const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store records the workspaces that have been created, using SQLite.
type Store struct {
	db *sql.DB
}

// Entry describes one created workspace.
type Entry struct {
	EntryID       uuid.UUID `json:"entry_id"`
	ProblemID     string    `json:"problem_id"`
	ProblemName   string    `json:"problem_name"`
	URL           string    `json:"url"`
	Directory     string    `json:"directory"`
	TestCaseCount int       `json:"test_case_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

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

// initSchema creates the entries table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		entry_id TEXT PRIMARY KEY,
		problem_id TEXT NOT NULL UNIQUE,
		problem_name TEXT NOT NULL,
		url TEXT NOT NULL,
		directory TEXT NOT NULL,
		test_case_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores an entry for a created workspace. An existing entry for the
// same problem id is replaced, matching the directory being overwritten.
func (s *Store) Record(problemID, problemName, url, directory string, testCaseCount int) (*Entry, error) {
	entry := &Entry{
		EntryID:       uuid.New(),
		ProblemID:     problemID,
		ProblemName:   problemName,
		URL:           url,
		Directory:     directory,
		TestCaseCount: testCaseCount,
		CreatedAt:     time.Now().UTC(),
	}

	query := `
		INSERT OR REPLACE INTO entries (
			entry_id, problem_id, problem_name, url, directory,
			test_case_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		entry.EntryID.String(),
		entry.ProblemID,
		entry.ProblemName,
		entry.URL,
		entry.Directory,
		entry.TestCaseCount,
		entry.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	return entry, nil
}

// Get retrieves the entry for a problem id.
func (s *Store) Get(problemID string) (*Entry, error) {
	query := `
		SELECT entry_id, problem_id, problem_name, url, directory,
		       test_case_count, created_at
		FROM entries
		WHERE problem_id = ?
	`

	entry, err := scanEntry(s.db.QueryRow(query, problemID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest first. A limit of zero or less returns all of
// them.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT entry_id, problem_id, problem_name, url, directory,
		       test_case_count, created_at
		FROM entries
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entryIDStr, createdAtStr string
	var entry Entry

	err := row.Scan(
		&entryIDStr,
		&entry.ProblemID,
		&entry.ProblemName,
		&entry.URL,
		&entry.Directory,
		&entry.TestCaseCount,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	entry.EntryID, err = uuid.Parse(entryIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid entry_id: %w", err)
	}

	entry.CreatedAt, err = time.Parse(timeFormat, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	return &entry, nil
}
