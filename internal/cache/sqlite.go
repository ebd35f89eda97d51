package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pinchbench/pinchboard/internal/api"
	_ "modernc.org/sqlite" // driver: sqlite
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  fetched_at INTEGER NOT NULL
);
`

// SQLiteCache stores submissions as JSON rows in a SQLite database.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures its schema.
func OpenSQLite(path string) (*SQLiteCache, error) {
	dsn := "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("opening sqlite cache: %w", err)
	}
	if _, err := db.Exec(schemaSQLite); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get retrieves a cached submission if it exists.
func (c *SQLiteCache) Get(id string) (*api.SubmissionDetail, bool) {
	var payload string
	err := c.db.QueryRow("SELECT payload FROM submissions WHERE id = ?", id).Scan(&payload)
	if err != nil {
		return nil, false
	}

	var detail api.SubmissionDetail
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		return nil, false
	}
	return &detail, true
}

// Put inserts or replaces a submission.
func (c *SQLiteCache) Put(detail *api.SubmissionDetail) error {
	if detail == nil {
		return nil
	}
	if detail.ID == "" {
		return fmt.Errorf("cannot cache submission without id")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO submissions (id, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, detail.ID, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing submission %s: %w", detail.ID, err)
	}
	return nil
}

// Clear deletes every cached submission.
func (c *SQLiteCache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM submissions"); err != nil {
		return fmt.Errorf("clearing sqlite cache: %w", err)
	}
	return nil
}

// Len returns the number of cached submissions.
func (c *SQLiteCache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
