package analysis

import (
	"testing"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/query"
)

func str(s string) *string {
	return &s
}

func setupTable(t *testing.T) *history.Table {
	t.Helper()
	table, err := history.Normalize([]history.RawRecord{
		{Ts: "2024-01-15T10:00:00Z", MsPlayed: 240000, Artist: str("A"), Platform: str("iOS")},
		{Ts: "2024-01-15T21:00:00Z", MsPlayed: 120000, Artist: str("B"), Platform: str("iOS")},
		{Ts: "2024-03-02T21:30:00Z", MsPlayed: 360000, Artist: str("B"), Platform: str("android")},
		{Ts: "2024-03-02T22:00:00Z", MsPlayed: 60000, Platform: str("android")},
		{Ts: "2024-03-03T22:00:00Z", MsPlayed: 20000, Artist: str("C"), Platform: str("android")},
	}, nil)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	return table
}

func TestGenerateReport(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report := GenerateReport(setupTable(t), query.Selection{Year: 2024}, nil, "", 10, now)

	md := report.Metadata
	if md.GeneratedDate != "2024-06-01" || md.Year != 2024 || md.TotalPlays != 4 || md.TotalMinutes != 13 {
		t.Errorf("Metadata = %+v", md)
	}

	if len(report.Monthly) != 2 || report.Monthly[0].Month != "2024-01" || report.Monthly[1].Minutes != 7 {
		t.Errorf("Monthly = %+v", report.Monthly)
	}

	if len(report.TopArtists) != 2 {
		t.Fatalf("TopArtists = %+v", report.TopArtists)
	}
	if report.TopArtists[0].Name != "B" || report.TopArtists[0].Minutes != 8 || report.TopArtists[0].Share != 0.62 {
		t.Errorf("TopArtists[0] = %+v", report.TopArtists[0])
	}

	lp := report.ListeningPatterns
	if lp.ActiveDays != 2 || lp.MinutesPerActiveDay != 6.5 {
		t.Errorf("active days = %d, per day = %f", lp.ActiveDays, lp.MinutesPerActiveDay)
	}
	if lp.BusiestWeekday != "Saturday" {
		t.Errorf("BusiestWeekday = %s, want Saturday", lp.BusiestWeekday)
	}
	if lp.BusiestHour == nil || *lp.BusiestHour != 21 {
		t.Errorf("BusiestHour = %v, want 21", lp.BusiestHour)
	}
	if lp.BusiestMonth != "2024-03" {
		t.Errorf("BusiestMonth = %s, want 2024-03", lp.BusiestMonth)
	}
	if lp.UnknownArtistMinutes != 1 {
		t.Errorf("UnknownArtistMinutes = %f, want 1", lp.UnknownArtistMinutes)
	}
}

func TestGenerateReportEmptySelection(t *testing.T) {
	report := GenerateReport(setupTable(t), query.Selection{Year: 2020}, []string{"A"}, "web", 10, time.Now())

	if report.Metadata.TotalPlays != 0 || len(report.Monthly) != 0 || len(report.TopArtists) != 0 || len(report.Heatmap) != 0 {
		t.Errorf("report for empty selection = %+v", report)
	}
	if report.ListeningPatterns.BusiestHour != nil || report.ListeningPatterns.BusiestWeekday != "" {
		t.Errorf("patterns for empty selection = %+v", report.ListeningPatterns)
	}
	if report.Metadata.Platform != "web" || len(report.Metadata.Artists) != 1 {
		t.Errorf("selection not echoed: %+v", report.Metadata)
	}
}

func TestArgmax(t *testing.T) {
	if got := argmax([]float64{1, 3, 3, 2}); got != 1 {
		t.Errorf("argmax() = %d, want 1", got)
	}
	if got := argmax([]float64{0, 0}); got != 0 {
		t.Errorf("argmax() = %d, want 0", got)
	}
}
