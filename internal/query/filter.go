package query

import (
	"errors"

	"github.com/ademuri/streaming-history/internal/history"
)

// ErrEmptyResult reports that a selection matched no plays. It is informational: an
// empty view still aggregates to empty results.
var ErrEmptyResult = errors.New("selection matched no plays")

type matchKind int

const (
	matchAny matchKind = iota
	matchExactly
	matchOneOf
)

// Match is a constraint on one optional text dimension. The zero value matches
// everything.
type Match struct {
	kind   matchKind
	values map[string]bool
}

// Any places no constraint on the dimension.
func Any() Match {
	return Match{}
}

// Exactly matches a single value.
func Exactly(v string) Match {
	return Match{kind: matchExactly, values: map[string]bool{v: true}}
}

// OneOf matches any of vs. With no values it behaves like Any.
func OneOf(vs ...string) Match {
	if len(vs) == 0 {
		return Any()
	}
	values := make(map[string]bool, len(vs))
	for _, v := range vs {
		values[v] = true
	}
	return Match{kind: matchOneOf, values: values}
}

func (m Match) IsAny() bool {
	return m.kind == matchAny
}

// Matches reports whether v satisfies the constraint. A missing value only satisfies
// Any.
func (m Match) Matches(v *string) bool {
	if m.kind == matchAny {
		return true
	}
	if v == nil {
		return false
	}
	return m.values[*v]
}

// Selection is one user choice of filters. Year is always applied.
type Selection struct {
	Year     int
	Artist   Match
	Platform Match
}

func (s Selection) matches(p history.Play) bool {
	return p.Year() == s.Year && s.Platform.Matches(p.Platform) && s.Artist.Matches(p.Artist)
}

// View is the subset of a table matching a Selection. It is never modified after
// Apply returns.
type View struct {
	plays []history.Play
}

// Apply filters t down to the plays matching sel.
func Apply(t *history.Table, sel Selection) View {
	var plays []history.Play
	t.Each(func(p history.Play) {
		if sel.matches(p) {
			plays = append(plays, p)
		}
	})
	return View{plays: plays}
}

func (v View) Len() int {
	return len(v.plays)
}

func (v View) Empty() bool {
	return len(v.plays) == 0
}

// Check returns ErrEmptyResult when the view is empty.
func (v View) Check() error {
	if v.Empty() {
		return ErrEmptyResult
	}
	return nil
}

func (v View) Each(fn func(history.Play)) {
	for _, p := range v.plays {
		fn(p)
	}
}

func (v View) TotalMinutes() float64 {
	var total float64
	for _, p := range v.plays {
		total += p.Minutes()
	}
	return total
}
