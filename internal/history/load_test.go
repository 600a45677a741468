package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoadConcatenatesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2023.json", `[
		{"ts": "2023-05-01T08:00:00Z", "ms_played": 180000, "master_metadata_album_artist_name": "A", "platform": "iOS"}
	]`)
	writeFile(t, dir, "Streaming_History_Audio_2024.json", `[
		{"ts": "2024-01-15T10:00:00Z", "ms_played": 240000, "master_metadata_album_artist_name": null, "platform": "android", "extra": 1},
		{"ts": "2024-01-16T10:00:00Z", "ms_played": 60000}
	]`)
	writeFile(t, dir, "Streaming_History_Video_2024.json", `not even json`)

	records, err := Load(dir, DefaultPattern)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Load() returned %d records, want 3", len(records))
	}

	if records[1].Artist != nil {
		t.Errorf("null artist decoded as %q, want nil", *records[1].Artist)
	}
	if records[0].MsPlayed != 180000 || *records[0].Platform != "iOS" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[2].Platform != nil {
		t.Errorf("missing platform decoded as %q, want nil", *records[2].Platform)
	}
}

func TestLoadNoHistory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		dir  string
	}{
		{"missing directory", filepath.Join(dir, "nope")},
		{"no matching files", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Load(tt.dir, DefaultPattern)
			if !errors.Is(err, ErrNoHistory) {
				t.Fatalf("Load() error = %v, want ErrNoHistory", err)
			}
			if len(records) != 0 {
				t.Errorf("Load() returned %d records, want 0", len(records))
			}
		})
	}
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `[{"ts": `},
		{"object instead of array", `{"ts": "2024-01-01T00:00:00Z"}`},
		{"array of numbers", `[1, 2, 3]`},
		{"null element", `[null]`},
		{"wrong field type", `[{"ts": "2024-01-01T00:00:00Z", "ms_played": "lots"}]`},
		{"empty file", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "Streaming_History_Audio_0.json", tt.content)

			_, err := Load(dir, DefaultPattern)
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Load() error = %v, want *FormatError", err)
			}
			if filepath.Base(formatErr.Path) != "Streaming_History_Audio_0.json" {
				t.Errorf("FormatError.Path = %q", formatErr.Path)
			}
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "[]")

	_, err := Load(filepath.Join(dir, "file"), DefaultPattern)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load() error = %v, want *IOError", err)
	}
}

func TestLoadEmptyArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_0.json", " [] \n")

	records, err := Load(dir, DefaultPattern)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Load() returned %d records, want 0", len(records))
	}
}
