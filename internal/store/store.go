package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY,
  ts INTEGER NOT NULL,
  ms_played INTEGER NOT NULL,
  artist TEXT,
  platform TEXT
);

CREATE INDEX IF NOT EXISTS PlayTs ON Play (ts);

CREATE TABLE IF NOT EXISTS Import (
  id INTEGER PRIMARY KEY,
  source TEXT NOT NULL,
  pattern TEXT,
  imported_at DATETIME NOT NULL,
  plays INTEGER NOT NULL
);
`

// Store holds a snapshot of the cleaned working table in SQLite.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Exists reports whether a snapshot has been imported into the database.
func (s *Store) Exists() (bool, error) {
	row := s.db.QueryRow("SELECT id FROM Import LIMIT 1")
	var id int64
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking for imports: %w", err)
	}
	return true, nil
}
