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
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/streaming-history/internal/query"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int
}

type Analyser interface {
	GetResults(view query.View) Analysis

	GetName() string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func formatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', 1, 64)
}

type MonthlyAnalyser struct{}

func (MonthlyAnalyser) GetName() string {
	return "Minutes per month"
}

func (MonthlyAnalyser) GetResults(view query.View) (analysis Analysis) {
	monthly := query.Monthly(view)
	analysis.results = [][]string{{"Month", "Minutes"}}
	for _, m := range monthly {
		analysis.results = append(analysis.results, []string{m.Month.String(), formatMinutes(m.Minutes)})
	}
	analysis.summary = fmt.Sprintf("Found %d months and %s minutes\n", len(monthly), formatMinutes(view.TotalMinutes()))
	return
}

type TopArtistsAnalyser struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyser) SetConfig(config AnalyserConfig) TopArtistsAnalyser {
	t.Config = config
	return t
}

func (t TopArtistsAnalyser) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyser) GetResults(view query.View) (analysis Analysis) {
	all := query.TopArtists(view, 0)
	top := all
	if t.Config.NumToReturn > 0 && len(top) > t.Config.NumToReturn {
		top = top[:t.Config.NumToReturn]
	}

	analysis.results = [][]string{{"Artist", "Minutes"}}
	for _, a := range top {
		analysis.results = append(analysis.results, []string{a.Artist, formatMinutes(a.Minutes)})
	}
	analysis.summary = fmt.Sprintf("Found %d artists and %d plays\n", len(all), view.Len())
	return
}

type HeatmapAnalyser struct{}

func (HeatmapAnalyser) GetName() string {
	return "Listening by weekday and hour"
}

func (HeatmapAnalyser) GetResults(view query.View) (analysis Analysis) {
	cells := query.Heatmap(view)
	analysis.results = [][]string{{"Weekday", "Hour", "Minutes"}}
	for _, c := range cells {
		analysis.results = append(analysis.results, []string{c.Weekday.String(), strconv.Itoa(c.Hour), formatMinutes(c.Minutes)})
	}
	analysis.summary = fmt.Sprintf("Found %d of %d weekday/hour slots with plays\n", len(cells), 7*24)
	return
}
