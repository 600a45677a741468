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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/streaming-history/internal/analysis"
	"github.com/ademuri/streaming-history/internal/query"
)

var (
	reportArtists  []string
	reportPlatform string
	reportNumber   int
	reportFromDb   bool
)

var reportCmd = &cobra.Command{
	Use:   "report <year>",
	Short: "Generates a YAML listening report for a year",
	Long:  `Summarises a year of listening history, optionally filtered by artist and platform, as YAML.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(os.Stdout, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	addSelectionFlags(reportCmd, &reportArtists, &reportPlatform)
	reportCmd.Flags().IntVarP(&reportNumber, "number", "n", query.TopArtistLimit, "number of top artists to include")
	reportCmd.Flags().BoolVar(&reportFromDb, "from_db", false, "Load plays from the SQLite snapshot instead of the JSON files")
}

func runReport(out io.Writer, yearArg string) error {
	sel, err := parseSelection(yearArg, reportArtists, reportPlatform)
	if err != nil {
		return err
	}
	table, err := loadTable(reportFromDb)
	if err != nil {
		return err
	}

	report := analysis.GenerateReport(table, sel, reportArtists, reportPlatform, reportNumber, time.Now())

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
