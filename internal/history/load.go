package history

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"
)

const (
	// DefaultDir is where the Spotify export unpacks its extended history.
	DefaultDir = "./Spotify Extended Streaming History"

	// DefaultPattern matches the audio history files of the extended export.
	DefaultPattern = "Streaming_History_Audio_*.json"
)

// RawRecord is one entry of an export file, before any cleaning.
type RawRecord struct {
	Ts       string  `json:"ts"`
	MsPlayed int64   `json:"ms_played"`
	Artist   *string `json:"master_metadata_album_artist_name"`
	Platform *string `json:"platform"`
}

// Load reads every file in dir matching pattern and returns the concatenation of
// their records.
func Load(dir, pattern string) ([]RawRecord, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("directory %q: %w", dir, ErrNoHistory)
	}
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%q in %q: %w", pattern, dir, ErrNoHistory)
	}
	sort.Strings(files)

	var records []RawRecord
	for _, file := range files {
		fileRecords, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}

func loadFile(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return decodeRecords(path, data)
}

func decodeRecords(path string, data []byte) ([]RawRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &FormatError{Path: path, Index: -1, Err: fmt.Errorf("expected a JSON array")}
	}

	// Decode elements separately first so that nulls and scalars are rejected
	// instead of silently becoming zero-valued records.
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, &FormatError{Path: path, Index: -1, Err: err}
	}

	records := make([]RawRecord, 0, len(elements))
	for i, element := range elements {
		element = bytes.TrimSpace(element)
		if len(element) == 0 || element[0] != '{' {
			return nil, &FormatError{Path: path, Index: i, Err: fmt.Errorf("expected a JSON object")}
		}
		var record RawRecord
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, &FormatError{Path: path, Index: i, Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}
