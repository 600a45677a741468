package analysis

import (
	"math"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/query"
)

// GenerateReport summarises the plays of t matching sel. topN limits the artist
// list; zero or less lists every artist.
func GenerateReport(t *history.Table, sel query.Selection, artists []string, platform string, topN int, now time.Time) *Report {
	view := query.Apply(t, sel)
	total := view.TotalMinutes()

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedDate: now.Format("2006-01-02"),
			Year:          sel.Year,
			Artists:       artists,
			Platform:      platform,
			TotalPlays:    view.Len(),
			TotalMinutes:  round(total),
		},
		Monthly:    []MonthStat{},
		TopArtists: []ArtistStat{},
	}

	for _, m := range query.Monthly(view) {
		report.Monthly = append(report.Monthly, MonthStat{Month: m.Month.String(), Minutes: round(m.Minutes)})
	}

	for _, a := range query.TopArtists(view, topN) {
		stat := ArtistStat{Name: a.Artist, Minutes: round(a.Minutes)}
		if total > 0 {
			stat.Share = round(a.Minutes / total)
		}
		report.TopArtists = append(report.TopArtists, stat)
	}

	cells := query.Heatmap(view)
	for _, c := range cells {
		report.Heatmap = append(report.Heatmap, HeatStat{Weekday: c.Weekday.String(), Hour: c.Hour, Minutes: round(c.Minutes)})
	}

	report.ListeningPatterns = calculateListeningPatterns(view, cells)
	return report
}

func calculateListeningPatterns(view query.View, cells []query.HeatCell) ListeningPatterns {
	var lp ListeningPatterns
	if view.Empty() {
		return lp
	}

	days := make(map[string]bool)
	var unknown float64
	view.Each(func(p history.Play) {
		days[p.Date()] = true
		if p.Artist == nil {
			unknown += p.Minutes()
		}
	})
	lp.ActiveDays = len(days)
	lp.MinutesPerActiveDay = round(view.TotalMinutes() / float64(len(days)))
	lp.UnknownArtistMinutes = round(unknown)

	var byWeekday [7]float64
	var byHour [24]float64
	for _, c := range cells {
		byWeekday[history.WeekdayIndex(c.Weekday)] += c.Minutes
		byHour[c.Hour] += c.Minutes
	}
	lp.BusiestWeekday = history.Weekdays[argmax(byWeekday[:])].String()
	hour := argmax(byHour[:])
	lp.BusiestHour = &hour

	var busiest query.MonthTotal
	for _, m := range query.Monthly(view) {
		if m.Minutes > busiest.Minutes {
			busiest = m
		}
	}
	lp.BusiestMonth = busiest.Month.String()

	return lp
}

// argmax returns the index of the largest value, preferring the earliest on ties.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
