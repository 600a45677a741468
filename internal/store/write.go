package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/mattn/go-sqlite3"

	"github.com/ademuri/streaming-history/internal/history"
)

// Source describes where an imported snapshot came from.
type Source struct {
	Dir     string
	Pattern string
}

// ReplacePlays swaps the stored snapshot for the plays in t, transactionally. A
// locked database is retried a few times before giving up.
func (s *Store) ReplacePlays(t *history.Table, src Source) error {
	return retry.Do(
		func() error {
			return s.replacePlays(t, src)
		},
		retry.Attempts(5),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isBusy),
	)
}

func (s *Store) replacePlays(t *history.Table, src Source) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Play"); err != nil {
		return fmt.Errorf("clearing plays: %w", err)
	}

	insert, err := tx.Prepare("INSERT INTO Play (ts, ms_played, artist, platform) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	var insertErr error
	t.Each(func(p history.Play) {
		if insertErr != nil {
			return
		}
		_, insertErr = insert.Exec(p.Timestamp.UnixMilli(), p.MsPlayed, nullString(p.Artist), nullString(p.Platform))
	})
	if insertErr != nil {
		return fmt.Errorf("inserting play: %w", insertErr)
	}

	_, err = tx.Exec("INSERT INTO Import (source, pattern, imported_at, plays) VALUES (?, ?, ?, ?)",
		src.Dir, src.Pattern, time.Now().UTC(), t.Len())
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
