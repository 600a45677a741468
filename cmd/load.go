/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/logging"
	"github.com/ademuri/streaming-history/internal/store"
)

func loadLocation() (*time.Location, error) {
	name := viper.GetString("timezone")
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return loc, nil
}

func historySource() (store.Source, error) {
	dir, err := homedir.Expand(viper.GetString("data_dir"))
	if err != nil {
		return store.Source{}, fmt.Errorf("expanding data_dir: %w", err)
	}
	return store.Source{Dir: dir, Pattern: viper.GetString("pattern")}, nil
}

// readHistory reads and cleans the export files. A missing directory or an empty
// match returns an error wrapping history.ErrNoHistory.
func readHistory() (*history.Table, store.Source, error) {
	loc, err := loadLocation()
	if err != nil {
		return nil, store.Source{}, err
	}
	src, err := historySource()
	if err != nil {
		return nil, store.Source{}, err
	}

	raw, err := history.Load(src.Dir, src.Pattern)
	if err != nil {
		return nil, src, fmt.Errorf("loading history: %w", err)
	}

	table, err := history.Normalize(raw, loc)
	if err != nil {
		return nil, src, fmt.Errorf("normalizing history: %w", err)
	}
	log := logging.Logger()
	log.Info().
		Int("records", len(raw)).
		Int("plays", table.Len()).
		Int("skipped", len(raw)-table.Len()).
		Msg("loaded streaming history")
	return table, src, nil
}

// loadWorkingTable is readHistory for the dashboard: having no files at all is not
// an error, the result is an empty table and a warning.
func loadWorkingTable() (*history.Table, error) {
	table, src, err := readHistory()
	if errors.Is(err, history.ErrNoHistory) {
		log := logging.Logger()
		log.Warn().Err(err).Str("dir", src.Dir).Str("pattern", src.Pattern).Msg("no streaming history found, dashboard will be empty")
		return history.NewTable(nil), nil
	}
	return table, err
}

// loadStoredTable reads the working table from the SQLite snapshot written by import.
func loadStoredTable() (*history.Table, error) {
	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}
	dbPath, err := homedir.Expand(viper.GetString("database"))
	if err != nil {
		return nil, fmt.Errorf("expanding database: %w", err)
	}
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Database doesn't exist - run import first.")
	}

	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	exists, err := db.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("Database doesn't exist - run import first.")
	}

	info, err := db.LastImport()
	if err != nil {
		return nil, err
	}
	table, err := db.Table(loc)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	log := logging.Logger()
	log.Info().
		Str("source", info.Source.Dir).
		Time("imported_at", info.ImportedAt).
		Int("plays", table.Len()).
		Msg("loaded snapshot")
	return table, nil
}

func loadTable(fromDb bool) (*history.Table, error) {
	if fromDb {
		return loadStoredTable()
	}
	return loadWorkingTable()
}
