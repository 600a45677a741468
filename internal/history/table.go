package history

import (
	"fmt"
	"sort"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Table is the cleaned working set. It is never modified after construction and is
// safe to share between goroutines.
type Table struct {
	plays []Play
}

// Normalize parses and cleans raw export records. Timestamps are converted into loc
// (UTC when nil) before any field is derived from them. A single bad timestamp fails
// the whole batch.
func Normalize(raw []RawRecord, loc *time.Location) (*Table, error) {
	if loc == nil {
		loc = time.UTC
	}

	plays := make([]Play, 0, len(raw))
	for i, r := range raw {
		ts, err := parseTimestamp(r.Ts)
		if err != nil {
			return nil, &FormatError{Index: i, Err: err}
		}
		plays = append(plays, Play{
			Timestamp: ts.In(loc),
			MsPlayed:  r.MsPlayed,
			Artist:    nonEmpty(r.Artist),
			Platform:  nonEmpty(r.Platform),
		})
	}
	return &Table{plays: keepListened(plays)}, nil
}

// NewTable builds a Table from already-parsed plays, applying the same cleaning as
// Normalize. The input slice is not retained.
func NewTable(plays []Play) *Table {
	copied := make([]Play, 0, len(plays))
	for _, p := range plays {
		p.Artist = nonEmpty(p.Artist)
		p.Platform = nonEmpty(p.Platform)
		copied = append(copied, p)
	}
	return &Table{plays: keepListened(copied)}
}

func parseTimestamp(ts string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", ts)
}

func keepListened(plays []Play) []Play {
	kept := plays[:0]
	for _, p := range plays {
		if p.Minutes() > MinMinutes {
			kept = append(kept, p)
		}
	}
	return kept
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.plays)
}

func (t *Table) At(i int) Play {
	return t.plays[i]
}

// Each calls fn for every play in load order.
func (t *Table) Each(fn func(Play)) {
	if t == nil {
		return
	}
	for _, p := range t.plays {
		fn(p)
	}
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	var years []int
	t.Each(func(p Play) {
		if !seen[p.Year()] {
			seen[p.Year()] = true
			years = append(years, p.Year())
		}
	})
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent year present, if any.
func (t *Table) LatestYear() (int, bool) {
	years := t.Years()
	if len(years) == 0 {
		return 0, false
	}
	return years[len(years)-1], true
}

// Artists returns the sorted distinct artist names. Missing artists are not listed.
func (t *Table) Artists() []string {
	return t.distinct(Play.ArtistName)
}

// Platforms returns the sorted distinct platforms. Missing platforms are not listed.
func (t *Table) Platforms() []string {
	return t.distinct(Play.PlatformName)
}

func (t *Table) distinct(field func(Play) string) []string {
	seen := make(map[string]bool)
	var values []string
	t.Each(func(p Play) {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	})
	sort.Strings(values)
	return values
}

func (t *Table) TotalMinutes() float64 {
	var total float64
	t.Each(func(p Play) {
		total += p.Minutes()
	})
	return total
}
