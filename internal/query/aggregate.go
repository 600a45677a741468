package query

import (
	"sort"
	"sync"
	"time"

	"github.com/ademuri/streaming-history/internal/history"
)

// TopArtistLimit is the number of artists shown on the dashboard.
const TopArtistLimit = 10

type MonthTotal struct {
	Month   history.Month
	Minutes float64
}

type ArtistTotal struct {
	Artist  string
	Minutes float64
}

type HeatCell struct {
	Weekday time.Weekday
	Hour    int
	Minutes float64
}

// Monthly sums listening time per month, oldest month first.
func Monthly(v View) []MonthTotal {
	sums := make(map[history.Month]float64)
	v.Each(func(p history.Play) {
		sums[p.Month()] += p.Minutes()
	})

	totals := make([]MonthTotal, 0, len(sums))
	for month, minutes := range sums {
		totals = append(totals, MonthTotal{Month: month, Minutes: minutes})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month.Before(totals[j].Month)
	})
	return totals
}

// TopArtists sums listening time per artist and returns the n largest, largest first.
// Ties keep the order in which the artists were first seen. Plays without an artist
// are left out. n <= 0 returns every artist.
func TopArtists(v View, n int) []ArtistTotal {
	index := make(map[string]int)
	var totals []ArtistTotal
	v.Each(func(p history.Play) {
		if p.Artist == nil {
			return
		}
		i, ok := index[*p.Artist]
		if !ok {
			i = len(totals)
			index[*p.Artist] = i
			totals = append(totals, ArtistTotal{Artist: *p.Artist})
		}
		totals[i].Minutes += p.Minutes()
	})

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Minutes > totals[j].Minutes
	})
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// Heatmap sums listening time per weekday and hour. Only cells with plays are
// returned, Monday to Sunday and then by hour.
func Heatmap(v View) []HeatCell {
	var grid HeatGrid
	var seen [7][24]bool
	v.Each(func(p history.Play) {
		d := history.WeekdayIndex(p.Weekday())
		grid[d][p.Hour()] += p.Minutes()
		seen[d][p.Hour()] = true
	})

	var cells []HeatCell
	for d, weekday := range history.Weekdays {
		for h := 0; h < 24; h++ {
			if seen[d][h] {
				cells = append(cells, HeatCell{Weekday: weekday, Hour: h, Minutes: grid[d][h]})
			}
		}
	}
	return cells
}

// HeatGrid holds minutes indexed by history.Weekdays position and hour.
type HeatGrid [7][24]float64

// Grid expands heatmap cells into a full grid; absent cells are zero.
func Grid(cells []HeatCell) HeatGrid {
	var grid HeatGrid
	for _, c := range cells {
		grid[history.WeekdayIndex(c.Weekday)][c.Hour] += c.Minutes
	}
	return grid
}

// Rows flattens the grid into (weekday, hour, minutes) rows, Monday first.
func (g HeatGrid) Rows() []HeatCell {
	rows := make([]HeatCell, 0, 7*24)
	for d, weekday := range history.Weekdays {
		for h := 0; h < 24; h++ {
			rows = append(rows, HeatCell{Weekday: weekday, Hour: h, Minutes: g[d][h]})
		}
	}
	return rows
}

// Result is everything the dashboard shows for one Selection.
type Result struct {
	Selection    Selection
	Plays        int
	TotalMinutes float64
	Monthly      []MonthTotal
	TopArtists   []ArtistTotal
	Heatmap      []HeatCell
}

// Empty reports whether the selection matched nothing.
func (r Result) Empty() bool {
	return r.Plays == 0
}

// Compute filters t once and runs the three aggregations concurrently.
func Compute(t *history.Table, sel Selection) Result {
	view := Apply(t, sel)
	res := Result{
		Selection:    sel,
		Plays:        view.Len(),
		TotalMinutes: view.TotalMinutes(),
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		res.Monthly = Monthly(view)
	}()
	go func() {
		defer wg.Done()
		res.TopArtists = TopArtists(view, TopArtistLimit)
	}()
	go func() {
		defer wg.Done()
		res.Heatmap = Heatmap(view)
	}()
	wg.Wait()

	return res
}
