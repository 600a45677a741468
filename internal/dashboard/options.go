package dashboard

import (
	"github.com/ademuri/streaming-history/internal/history"
)

// Options lists the values offered by the dashboard's dropdowns.
type Options struct {
	Years       []int    `json:"years"`
	Artists     []string `json:"artists"`
	Platforms   []string `json:"platforms"`
	DefaultYear *int     `json:"default_year"`
}

// OptionsFor computes the dropdown contents for t. The year defaults to the most
// recent one.
func OptionsFor(t *history.Table) Options {
	opts := Options{
		Years:     nonNil(t.Years()),
		Artists:   nonNil(t.Artists()),
		Platforms: nonNil(t.Platforms()),
	}
	if year, ok := t.LatestYear(); ok {
		opts.DefaultYear = &year
	}
	return opts
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
