package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
)

// ImportInfo describes the most recent snapshot.
type ImportInfo struct {
	Source     Source
	ImportedAt time.Time
	Plays      int
}

func (s *Store) LastImport() (ImportInfo, error) {
	row := s.db.QueryRow("SELECT source, pattern, imported_at, plays FROM Import ORDER BY id DESC LIMIT 1")
	var info ImportInfo
	var pattern sql.NullString
	err := row.Scan(&info.Source.Dir, &pattern, &info.ImportedAt, &info.Plays)
	if err == sql.ErrNoRows {
		return ImportInfo{}, nil
	}
	if err != nil {
		return ImportInfo{}, fmt.Errorf("getting last import: %w", err)
	}
	info.Source.Pattern = pattern.String
	return info, nil
}

// Table reads the stored snapshot back into a working table, with timestamps in loc.
func (s *Store) Table(loc *time.Location) (*history.Table, error) {
	if loc == nil {
		loc = time.UTC
	}

	rows, err := s.db.Query("SELECT ts, ms_played, artist, platform FROM Play ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var plays []history.Play
	for rows.Next() {
		var ts, msPlayed int64
		var artist, platform sql.NullString
		if err := rows.Scan(&ts, &msPlayed, &artist, &platform); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		plays = append(plays, history.Play{
			Timestamp: time.UnixMilli(ts).In(loc),
			MsPlayed:  msPlayed,
			Artist:    stringPtr(artist),
			Platform:  stringPtr(platform),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading plays: %w", err)
	}
	return history.NewTable(plays), nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
