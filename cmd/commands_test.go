package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/query"
)

const testHistory = `[
  {"ts": "2024-01-15T10:00:00Z", "ms_played": 240000, "master_metadata_album_artist_name": "A", "platform": "iOS"},
  {"ts": "2024-01-15T10:05:00Z", "ms_played": 10000, "master_metadata_album_artist_name": "B", "platform": "iOS"},
  {"ts": "2024-02-03T22:00:00Z", "ms_played": 180000, "master_metadata_album_artist_name": "B", "platform": "android"},
  {"ts": "2023-06-01T08:00:00Z", "ms_played": 120000, "master_metadata_album_artist_name": null, "platform": "web"}
]`

// setupHistory points the configuration at a temporary export directory.
func setupHistory(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()

	dir := t.TempDir()
	if content != "" {
		path := filepath.Join(dir, "Streaming_History_Audio_2023-2024_0.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing history: %v", err)
		}
	}
	viper.Set("data_dir", dir)
	viper.Set("pattern", history.DefaultPattern)
	viper.Set("timezone", "UTC")
	viper.Set("database", filepath.Join(dir, "history.db"))
	return dir
}

func resetSelectionFlags() {
	summaryArtists, summaryPlatform, summaryNumber, summaryFromDb = nil, "", query.TopArtistLimit, false
	reportArtists, reportPlatform, reportNumber, reportFromDb = nil, "", query.TopArtistLimit, false
}

func TestSummary(t *testing.T) {
	setupHistory(t, testHistory)
	resetSelectionFlags()
	defer resetSelectionFlags()

	out := new(bytes.Buffer)
	if err := runSummary(out, "2024"); err != nil {
		t.Fatalf("runSummary() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Minutes per month", "2024-01", "2024-02", "Top artists", "Found 2 artists and 2 plays", "Monday", "Saturday"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "2023-06") {
		t.Errorf("summary output includes another year:\n%s", got)
	}
}

func TestSummaryFilters(t *testing.T) {
	setupHistory(t, testHistory)
	resetSelectionFlags()
	defer resetSelectionFlags()

	summaryArtists = []string{"B"}
	summaryPlatform = "android"
	out := new(bytes.Buffer)
	if err := runSummary(out, "2024"); err != nil {
		t.Fatalf("runSummary() error: %v", err)
	}
	if !strings.Contains(out.String(), "Found 1 artists and 1 plays") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSummaryEmptySelection(t *testing.T) {
	setupHistory(t, testHistory)
	resetSelectionFlags()

	out := new(bytes.Buffer)
	if err := runSummary(out, "1999"); err != nil {
		t.Fatalf("runSummary() error: %v", err)
	}
	if !strings.Contains(out.String(), "No plays match") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSummaryInvalidYear(t *testing.T) {
	setupHistory(t, testHistory)
	resetSelectionFlags()

	err := runSummary(new(bytes.Buffer), "derp")
	if err == nil {
		t.Fatalf("runSummary should have errored with an invalid year")
	}
}

func TestLoadWorkingTableNoFiles(t *testing.T) {
	setupHistory(t, "")

	table, err := loadWorkingTable()
	if err != nil {
		t.Fatalf("loadWorkingTable() error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("loadWorkingTable() returned %d plays, want 0", table.Len())
	}
}

func TestLoadWorkingTableMalformed(t *testing.T) {
	setupHistory(t, `{"not": "an array"}`)

	_, err := loadWorkingTable()
	var formatErr *history.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("loadWorkingTable() error = %v, want *history.FormatError", err)
	}
}

func TestLoadWorkingTableBadTimezone(t *testing.T) {
	setupHistory(t, testHistory)
	viper.Set("timezone", "Nowhere/Special")

	if _, err := loadWorkingTable(); err == nil {
		t.Fatalf("loadWorkingTable() should fail with an unknown time zone")
	}
}

func TestImportThenLoadStored(t *testing.T) {
	setupHistory(t, testHistory)

	if err := importHistory(viper.GetString("database")); err != nil {
		t.Fatalf("importHistory() error: %v", err)
	}

	table, err := loadTable(true)
	if err != nil {
		t.Fatalf("loadTable(true) error: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("stored table has %d plays, want 3", table.Len())
	}
}

func TestImportMissingHistoryKeepsSnapshot(t *testing.T) {
	dir := setupHistory(t, testHistory)
	dbPath := viper.GetString("database")
	if err := importHistory(dbPath); err != nil {
		t.Fatalf("importHistory() error: %v", err)
	}

	viper.Set("data_dir", filepath.Join(dir, "missing"))
	err := importHistory(dbPath)
	if !errors.Is(err, history.ErrNoHistory) {
		t.Fatalf("importHistory() error = %v, want ErrNoHistory", err)
	}

	table, err := loadStoredTable()
	if err != nil {
		t.Fatalf("loadStoredTable() error: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("snapshot has %d plays after failed import, want 3", table.Len())
	}
}

func TestLoadStoredTableMissing(t *testing.T) {
	setupHistory(t, testHistory)

	_, err := loadStoredTable()
	if err == nil {
		t.Fatalf("loadStoredTable should have errored with no import")
	}
	if !strings.Contains(err.Error(), "doesn't exist") {
		t.Fatalf("loadStoredTable should have said the db doesn't exist: %v", err)
	}
	if _, err := os.Stat(viper.GetString("database")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("loadStoredTable created the database file: %v", err)
	}
}

func TestReport(t *testing.T) {
	setupHistory(t, testHistory)
	resetSelectionFlags()

	out := new(bytes.Buffer)
	if err := runReport(out, "2024"); err != nil {
		t.Fatalf("runReport() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"year: 2024", "total_plays: 2", "month: 2024-01", "name: A", "busiest_weekday:"} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "import", "summary", "report"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
