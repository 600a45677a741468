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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/query"
)

var (
	summaryArtists  []string
	summaryPlatform string
	summaryNumber   int
	summaryFromDb   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <year>",
	Short: "Prints the dashboard aggregates as tables",
	Long: `Prints minutes per month, top artists and listening by weekday and hour for a
year. --artist may be repeated to restrict to several artists.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runSummary(os.Stdout, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	addSelectionFlags(summaryCmd, &summaryArtists, &summaryPlatform)
	summaryCmd.Flags().IntVarP(&summaryNumber, "number", "n", query.TopArtistLimit, "number of top artists to return")
	summaryCmd.Flags().BoolVar(&summaryFromDb, "from_db", false, "Load plays from the SQLite snapshot instead of the JSON files")
}

func addSelectionFlags(cmd *cobra.Command, artists *[]string, platform *string) {
	cmd.Flags().StringArrayVarP(artists, "artist", "a", nil, "Only include this artist (repeatable)")
	cmd.Flags().StringVar(platform, "platform", "", "Only include this platform")
}

func parseSelection(yearArg string, artists []string, platform string) (query.Selection, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return query.Selection{}, fmt.Errorf("Invalid year: %q", yearArg)
	}
	sel := query.Selection{Year: year, Artist: query.OneOf(artists...)}
	if platform != "" {
		sel.Platform = query.Exactly(platform)
	}
	return sel, nil
}

func runSummary(out io.Writer, yearArg string) error {
	sel, err := parseSelection(yearArg, summaryArtists, summaryPlatform)
	if err != nil {
		return err
	}
	table, err := loadTable(summaryFromDb)
	if err != nil {
		return err
	}
	return printSummary(out, table, sel, summaryNumber)
}

func printSummary(out io.Writer, table *history.Table, sel query.Selection, numToReturn int) error {
	view := query.Apply(table, sel)
	if err := view.Check(); errors.Is(err, query.ErrEmptyResult) {
		fmt.Fprintf(out, "No plays match the selection for %d.\n", sel.Year)
		return nil
	}

	analysers := []Analyser{
		MonthlyAnalyser{},
		TopArtistsAnalyser{}.SetConfig(AnalyserConfig{NumToReturn: numToReturn}),
		HeatmapAnalyser{},
	}
	for _, a := range analysers {
		fmt.Fprintf(out, "## %s\n", a.GetName())
		fmt.Fprintln(out, a.GetResults(view))
	}
	return nil
}
